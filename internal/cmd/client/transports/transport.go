package transports

import "context"

// Event is an event record as shown by the CLI.
type Event struct {
	EventID     uint32 `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
	Status      string `json:"status"`
}

// EventFields are the mutable fields of an event.
type EventFields struct {
	Name        string
	Description string
	StartDate   uint64
	EndDate     uint64
	Status      string
}

// Change is one change log entry.
type Change struct {
	Seq     uint64 `json:"seq"`
	Op      string `json:"op"`
	EventID uint32 `json:"event_id"`
	AtMs    int64  `json:"at_ms"`
	Event   *Event `json:"event,omitempty"`
}

// HistoryRequest selects a page of the change log.
type HistoryRequest struct {
	Namespace string
	Start     uint64
	Limit     int
	Reverse   bool
}

// EventsTransport abstracts the transport used by the CLI.
type EventsTransport interface {
	Create(ctx context.Context, ns string, f EventFields) (uint32, error)
	Read(ctx context.Context, ns string, id uint32) (*Event, error)
	Update(ctx context.Context, ns string, id uint32, f EventFields) error
	Delete(ctx context.Context, ns string, id uint32) error
	List(ctx context.Context, ns, filter string) ([]Event, error)
	Count(ctx context.Context, ns string) (uint32, error)
	ByIndex(ctx context.Context, ns string, index uint32) (*Event, error)
	History(ctx context.Context, req HistoryRequest) (items []Change, next uint64, err error)
	CreateNamespace(ctx context.Context, ns string) error
	ListNamespaces(ctx context.Context) ([]string, error)
}
