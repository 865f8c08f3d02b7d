package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/eventreg/internal/registry"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
)

// EventsController serves the registry of one namespace at /v1/ns/{ns}.
type EventsController struct {
	svc *eventsvc.Service
}

// NewEventsController creates a new events controller.
func NewEventsController(svc *eventsvc.Service) *EventsController {
	return &EventsController{svc: svc}
}

// RegisterRoutes registers event and change log routes with the given router.
func (c *EventsController) RegisterRoutes(r chi.Router) {
	r.Route("/v1/ns/{ns}", func(r chi.Router) {
		r.Post("/events", c.handleCreate)
		r.Get("/events", c.handleList)
		r.Get("/events/count", c.handleCount)
		r.Get("/events/index/{index}", c.handleByIndex)
		r.Get("/events/{id}", c.handleRead)
		r.Put("/events/{id}", c.handleUpdate)
		r.Delete("/events/{id}", c.handleDelete)
		r.Get("/changes", c.handleChanges)
	})
}

func (c *EventsController) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := c.svc.Create(r.Context(), chi.URLParam(r, "ns"), req.Name, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, CreateEventResp{EventID: id})
}

// handleList returns live events in ascending ID order, optionally narrowed
// by ?filter=<CEL>.
func (c *EventsController) handleList(w http.ResponseWriter, r *http.Request) {
	events, err := c.svc.List(r.Context(), chi.URLParam(r, "ns"), r.URL.Query().Get("filter"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []registry.Event{}
	}
	writeJSON(w, ListEventsResp{Events: events})
}

func (c *EventsController) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := c.svc.Count(r.Context(), chi.URLParam(r, "ns"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, CountResp{Count: n})
}

func (c *EventsController) handleByIndex(w http.ResponseWriter, r *http.Request) {
	index, err := uint32Param(r, "index")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid index")
		return
	}
	ev, ok, err := c.svc.ByIndex(r.Context(), chi.URLParam(r, "ns"), index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, ev)
}

func (c *EventsController) handleRead(w http.ResponseWriter, r *http.Request) {
	id, err := uint32Param(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	ev, ok, err := c.svc.Read(r.Context(), chi.URLParam(r, "ns"), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, ev)
}

// handleUpdate answers 204 whether or not the event exists.
func (c *EventsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uint32Param(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	var req updateEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.svc.Update(r.Context(), chi.URLParam(r, "ns"), id, req.Name, req.Description, req.StartDate, req.EndDate, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeNoContent(w)
}

func (c *EventsController) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uint32Param(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	if err := c.svc.Delete(r.Context(), chi.URLParam(r, "ns"), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeNoContent(w)
}

// handleChanges pages through the change log: ?start=&limit=&reverse=.
func (c *EventsController) handleChanges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var opts eventsvc.HistoryOptions
	if s := q.Get("start"); s != "" {
		start, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start token")
			return
		}
		opts.Start = start
	}
	opts.Limit = parseLimit(q.Get("limit"))
	if s := q.Get("reverse"); s != "" {
		rev, err := strconv.ParseBool(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid reverse flag")
			return
		}
		opts.Reverse = rev
	}
	items, next, err := c.svc.History(r.Context(), chi.URLParam(r, "ns"), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, ChangesResp{Items: items, Next: next})
}
