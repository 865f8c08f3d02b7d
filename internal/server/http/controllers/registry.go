package controllers

import (
	"github.com/go-chi/chi/v5"

	"github.com/rzbill/eventreg/internal/runtime"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general *GeneralController
	events  *EventsController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, svc *eventsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt, svc),
		events:  NewEventsController(svc),
	}
}

// RegisterAllRoutes registers all controller routes with the given router.
func (r *ControllerRegistry) RegisterAllRoutes(router chi.Router) {
	r.general.RegisterRoutes(router)
	r.events.RegisterRoutes(router)
}
