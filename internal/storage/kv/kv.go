package kv

import "context"

// Store is the durable key-value surface used by the registry, namespace
// metadata and the change log. Implementations must make Write atomic: either
// every staged mutation becomes visible or none does.
type Store interface {
	// Get returns a copy of the value for key. ok is false when the key is absent.
	Get(key []byte) (value []byte, ok bool, err error)
	// Set writes a single key.
	Set(key, value []byte) error
	// Remove deletes a single key. Removing an absent key is not an error.
	Remove(key []byte) error
	// Write runs fn against a staging writer and commits everything it staged
	// atomically. Nothing is committed when fn returns an error.
	Write(ctx context.Context, fn func(Writer) error) error
	// Scan visits keys in [LowerBound, UpperBound) in byte order (descending
	// when Reverse is set) until fn returns false.
	Scan(opts ScanOptions, fn func(key, value []byte) bool) error
}

// Writer stages mutations inside Store.Write.
type Writer interface {
	Set(key, value []byte) error
	Remove(key []byte) error
}

// ScanOptions bounds a Scan. A nil UpperBound means unbounded.
type ScanOptions struct {
	LowerBound []byte
	UpperBound []byte
	Reverse    bool
}

// PrefixEnd returns the smallest key greater than every key with the given
// prefix, suitable as an exclusive UpperBound. It returns nil when no such
// key exists (prefix is empty or all 0xFF).
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
