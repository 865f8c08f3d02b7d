// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"

	"google.golang.org/grpc"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
)

// GrpcTransport implements EventsTransport over gRPC.
type GrpcTransport struct {
	dial func(ctx context.Context) (*grpc.ClientConn, error)
}

var _ EventsTransport = (*GrpcTransport)(nil)

// NewGrpcTransport constructs a new GrpcTransport using the provided dialer.
func NewGrpcTransport(dial func(ctx context.Context) (*grpc.ClientConn, error)) *GrpcTransport {
	return &GrpcTransport{dial: dial}
}

func (t *GrpcTransport) withConn(ctx context.Context, fn func(conn *grpc.ClientConn) error) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

func (t *GrpcTransport) withEvents(ctx context.Context, fn func(cli *eventregv1.EventsClient) error) error {
	return t.withConn(ctx, func(conn *grpc.ClientConn) error {
		return fn(eventregv1.NewEventsClient(conn))
	})
}

func fromAPIEvent(ev *eventregv1.Event) *Event {
	if ev == nil {
		return nil
	}
	out := Event(*ev)
	return &out
}

// Create registers an event and returns its ID.
func (t *GrpcTransport) Create(ctx context.Context, ns string, f EventFields) (uint32, error) {
	var id uint32
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.Create(ctx, &eventregv1.CreateRequest{Namespace: ns, Name: f.Name, Description: f.Description, StartDate: f.StartDate, EndDate: f.EndDate})
		if err != nil {
			return err
		}
		id = res.EventID
		return nil
	})
	return id, err
}

// Read returns nil when the event does not exist.
func (t *GrpcTransport) Read(ctx context.Context, ns string, id uint32) (*Event, error) {
	var ev *Event
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.Read(ctx, &eventregv1.ReadRequest{Namespace: ns, EventID: id})
		if err != nil {
			return err
		}
		if res.Found {
			ev = fromAPIEvent(res.Event)
		}
		return nil
	})
	return ev, err
}

func (t *GrpcTransport) Update(ctx context.Context, ns string, id uint32, f EventFields) error {
	return t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		_, err := cli.Update(ctx, &eventregv1.UpdateRequest{
			Namespace:   ns,
			EventID:     id,
			Name:        f.Name,
			Description: f.Description,
			StartDate:   f.StartDate,
			EndDate:     f.EndDate,
			Status:      f.Status,
		})
		return err
	})
}

func (t *GrpcTransport) Delete(ctx context.Context, ns string, id uint32) error {
	return t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		_, err := cli.Delete(ctx, &eventregv1.DeleteRequest{Namespace: ns, EventID: id})
		return err
	})
}

func (t *GrpcTransport) List(ctx context.Context, ns, filter string) ([]Event, error) {
	var out []Event
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.List(ctx, &eventregv1.ListRequest{Namespace: ns, Filter: filter})
		if err != nil {
			return err
		}
		out = make([]Event, 0, len(res.Events))
		for _, ev := range res.Events {
			out = append(out, Event(ev))
		}
		return nil
	})
	return out, err
}

func (t *GrpcTransport) Count(ctx context.Context, ns string) (uint32, error) {
	var n uint32
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.Count(ctx, &eventregv1.CountRequest{Namespace: ns})
		if err != nil {
			return err
		}
		n = res.Count
		return nil
	})
	return n, err
}

// ByIndex returns nil when no event lives at index.
func (t *GrpcTransport) ByIndex(ctx context.Context, ns string, index uint32) (*Event, error) {
	var ev *Event
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.ByIndex(ctx, &eventregv1.ByIndexRequest{Namespace: ns, Index: index})
		if err != nil {
			return err
		}
		if res.Found {
			ev = fromAPIEvent(res.Event)
		}
		return nil
	})
	return ev, err
}

func (t *GrpcTransport) History(ctx context.Context, req HistoryRequest) ([]Change, uint64, error) {
	var (
		items []Change
		next  uint64
	)
	err := t.withEvents(ctx, func(cli *eventregv1.EventsClient) error {
		res, err := cli.History(ctx, &eventregv1.HistoryRequest{Namespace: req.Namespace, Start: req.Start, Limit: int32(req.Limit), Reverse: req.Reverse})
		if err != nil {
			return err
		}
		items = make([]Change, 0, len(res.Items))
		for _, c := range res.Items {
			items = append(items, Change{Seq: c.Seq, Op: c.Op, EventID: c.EventID, AtMs: c.AtMs, Event: fromAPIEvent(c.Event)})
		}
		next = res.Next
		return nil
	})
	return items, next, err
}

func (t *GrpcTransport) CreateNamespace(ctx context.Context, ns string) error {
	return t.withConn(ctx, func(conn *grpc.ClientConn) error {
		_, err := eventregv1.NewNamespacesClient(conn).Create(ctx, &eventregv1.CreateNamespaceRequest{Namespace: ns})
		return err
	})
}

func (t *GrpcTransport) ListNamespaces(ctx context.Context) ([]string, error) {
	var names []string
	err := t.withConn(ctx, func(conn *grpc.ClientConn) error {
		res, err := eventregv1.NewNamespacesClient(conn).List(ctx, &eventregv1.ListNamespacesRequest{})
		if err != nil {
			return err
		}
		names = res.Namespaces
		return nil
	})
	return names, err
}
