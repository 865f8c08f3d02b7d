package log

import "time"

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F builds a Field from any value.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

func Str(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Uint32(key string, value uint32) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value.String()} }

// Err records err under "error". A nil error yields an empty string value.
func Err(err error) Field {
	if err == nil {
		return Field{Key: ErrorKey, Value: ""}
	}
	return Field{Key: ErrorKey, Value: err.Error()}
}

// Component tags the emitting subsystem.
func Component(name string) Field { return Field{Key: ComponentKey, Value: name} }

// RequestID tags a line with the request it belongs to.
func RequestID(id string) Field { return Field{Key: RequestIDKey, Value: id} }

// Well-known field keys.
const (
	ErrorKey     = "error"
	ComponentKey = "component"
	RequestIDKey = "request_id"
)
