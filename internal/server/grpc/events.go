package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
	"github.com/rzbill/eventreg/internal/registry"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
)

type eventsServer struct {
	eventregv1.UnimplementedEventsServer
	svc *eventsvc.Service
}

func (s *eventsServer) Create(ctx context.Context, req *eventregv1.CreateRequest) (*eventregv1.CreateResponse, error) {
	id, err := s.svc.Create(ctx, req.Namespace, req.Name, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		return nil, toStatus(err)
	}
	return &eventregv1.CreateResponse{EventID: id}, nil
}

func (s *eventsServer) Read(ctx context.Context, req *eventregv1.ReadRequest) (*eventregv1.ReadResponse, error) {
	ev, ok, err := s.svc.Read(ctx, req.Namespace, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}
	if !ok {
		return &eventregv1.ReadResponse{}, nil
	}
	out := toEvent(ev)
	return &eventregv1.ReadResponse{Found: true, Event: &out}, nil
}

func (s *eventsServer) Update(ctx context.Context, req *eventregv1.UpdateRequest) (*eventregv1.UpdateResponse, error) {
	st := registry.StatusActive
	if req.Status != "" {
		parsed, err := registry.ParseStatus(req.Status)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		st = parsed
	}
	if err := s.svc.Update(ctx, req.Namespace, req.EventID, req.Name, req.Description, req.StartDate, req.EndDate, st); err != nil {
		return nil, toStatus(err)
	}
	return &eventregv1.UpdateResponse{}, nil
}

func (s *eventsServer) Delete(ctx context.Context, req *eventregv1.DeleteRequest) (*eventregv1.DeleteResponse, error) {
	if err := s.svc.Delete(ctx, req.Namespace, req.EventID); err != nil {
		return nil, toStatus(err)
	}
	return &eventregv1.DeleteResponse{}, nil
}

func (s *eventsServer) List(ctx context.Context, req *eventregv1.ListRequest) (*eventregv1.ListResponse, error) {
	events, err := s.svc.List(ctx, req.Namespace, req.Filter)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]eventregv1.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, toEvent(ev))
	}
	return &eventregv1.ListResponse{Events: out}, nil
}

func (s *eventsServer) Count(ctx context.Context, req *eventregv1.CountRequest) (*eventregv1.CountResponse, error) {
	n, err := s.svc.Count(ctx, req.Namespace)
	if err != nil {
		return nil, toStatus(err)
	}
	return &eventregv1.CountResponse{Count: n}, nil
}

func (s *eventsServer) ByIndex(ctx context.Context, req *eventregv1.ByIndexRequest) (*eventregv1.ByIndexResponse, error) {
	ev, ok, err := s.svc.ByIndex(ctx, req.Namespace, req.Index)
	if err != nil {
		return nil, toStatus(err)
	}
	if !ok {
		return &eventregv1.ByIndexResponse{}, nil
	}
	out := toEvent(ev)
	return &eventregv1.ByIndexResponse{Found: true, Event: &out}, nil
}

func (s *eventsServer) History(ctx context.Context, req *eventregv1.HistoryRequest) (*eventregv1.HistoryResponse, error) {
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	items, next, err := s.svc.History(ctx, req.Namespace, eventsvc.HistoryOptions{
		Start:   req.Start,
		Limit:   int(req.Limit),
		Reverse: req.Reverse,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]eventregv1.Change, 0, len(items))
	for _, it := range items {
		out = append(out, toChange(it))
	}
	return &eventregv1.HistoryResponse{Items: out, Next: next}, nil
}

type namespacesServer struct {
	svc *eventsvc.Service
}

func (s *namespacesServer) Create(ctx context.Context, req *eventregv1.CreateNamespaceRequest) (*eventregv1.CreateNamespaceResponse, error) {
	meta, err := s.svc.EnsureNamespace(ctx, req.Namespace)
	if err != nil {
		return nil, toStatus(err)
	}
	return &eventregv1.CreateNamespaceResponse{Name: meta.Name, CreatedAtMs: meta.CreatedAtMs}, nil
}

func (s *namespacesServer) List(ctx context.Context, _ *eventregv1.ListNamespacesRequest) (*eventregv1.ListNamespacesResponse, error) {
	names, err := s.svc.ListNamespaces(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	if names == nil {
		names = []string{}
	}
	return &eventregv1.ListNamespacesResponse{Namespaces: names}, nil
}
