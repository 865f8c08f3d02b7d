package registry

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an Event.
type Status uint8

const (
	// StatusActive is assigned to every newly created event.
	StatusActive Status = iota
	// StatusCompleted is reachable only through Update.
	StatusCompleted
)

// String returns "Active" or "Completed".
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// ParseStatus accepts the textual form case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if s > StatusCompleted {
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Event is a registry record. EventID is assigned by Create and never changes.
type Event struct {
	EventID     uint32 `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
	Status      Status `json:"status"`
}

// Op names the kind of mutation recorded for a Change.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change describes one successful mutation. Event holds the record after the
// mutation and is nil for deletes.
type Change struct {
	Op      Op     `json:"op"`
	EventID uint32 `json:"event_id"`
	AtMs    int64  `json:"at_ms"`
	Event   *Event `json:"event,omitempty"`
}
