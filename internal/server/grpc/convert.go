package grpcserver

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
	"github.com/rzbill/eventreg/internal/changelog"
	"github.com/rzbill/eventreg/internal/registry"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
)

// toStatus maps service errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, eventsvc.ErrInvalidNamespace), errors.Is(err, eventsvc.ErrInvalidFilter):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, eventsvc.ErrNamespaceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, eventsvc.ErrNamespaceLimit):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toEvent(ev registry.Event) eventregv1.Event {
	return eventregv1.Event{
		EventID:     ev.EventID,
		Name:        ev.Name,
		Description: ev.Description,
		StartDate:   ev.StartDate,
		EndDate:     ev.EndDate,
		Status:      ev.Status.String(),
	}
}

func toChange(e changelog.Entry) eventregv1.Change {
	c := eventregv1.Change{Seq: e.Seq, Op: string(e.Op), EventID: e.EventID, AtMs: e.AtMs}
	if e.Event != nil {
		ev := toEvent(*e.Event)
		c.Event = &ev
	}
	return c
}
