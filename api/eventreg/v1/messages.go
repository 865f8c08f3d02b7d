package eventregv1

// Event mirrors a registry record. Status is "Active" or "Completed".
type Event struct {
	EventID     uint32 `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
	Status      string `json:"status"`
}

// Change is one change log entry. Event is absent for deletes.
type Change struct {
	Seq     uint64 `json:"seq"`
	Op      string `json:"op"`
	EventID uint32 `json:"event_id"`
	AtMs    int64  `json:"at_ms"`
	Event   *Event `json:"event,omitempty"`
}

type CreateRequest struct {
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
}

type CreateResponse struct {
	EventID uint32 `json:"event_id"`
}

type ReadRequest struct {
	Namespace string `json:"namespace"`
	EventID   uint32 `json:"event_id"`
}

// ReadResponse carries Found=false rather than an error for absent events.
type ReadResponse struct {
	Found bool   `json:"found"`
	Event *Event `json:"event,omitempty"`
}

// UpdateRequest replaces every mutable field. An empty Status means Active.
type UpdateRequest struct {
	Namespace   string `json:"namespace"`
	EventID     uint32 `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
	Status      string `json:"status"`
}

type UpdateResponse struct{}

type DeleteRequest struct {
	Namespace string `json:"namespace"`
	EventID   uint32 `json:"event_id"`
}

type DeleteResponse struct{}

type ListRequest struct {
	Namespace string `json:"namespace"`
	// Filter is an optional CEL expression over event_id, name,
	// description, start_date, end_date and status.
	Filter string `json:"filter,omitempty"`
}

type ListResponse struct {
	Events []Event `json:"events"`
}

type CountRequest struct {
	Namespace string `json:"namespace"`
}

type CountResponse struct {
	Count uint32 `json:"count"`
}

type ByIndexRequest struct {
	Namespace string `json:"namespace"`
	Index     uint32 `json:"index"`
}

type ByIndexResponse struct {
	Found bool   `json:"found"`
	Event *Event `json:"event,omitempty"`
}

type HistoryRequest struct {
	Namespace string `json:"namespace"`
	Start     uint64 `json:"start,omitempty"`
	Limit     int32  `json:"limit,omitempty"`
	Reverse   bool   `json:"reverse,omitempty"`
}

type HistoryResponse struct {
	Items []Change `json:"items"`
	Next  uint64   `json:"next"`
}

type CreateNamespaceRequest struct {
	Namespace string `json:"namespace"`
}

type CreateNamespaceResponse struct {
	Name        string `json:"name"`
	CreatedAtMs int64  `json:"created_at_ms"`
}

type ListNamespacesRequest struct{}

type ListNamespacesResponse struct {
	Namespaces []string `json:"namespaces"`
}
