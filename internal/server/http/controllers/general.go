package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/eventreg/internal/runtime"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
)

// GeneralController handles health and namespace endpoints.
type GeneralController struct {
	rt  *runtime.Runtime
	svc *eventsvc.Service
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime, svc *eventsvc.Service) *GeneralController {
	return &GeneralController{rt: rt, svc: svc}
}

// RegisterRoutes registers general routes with the given router.
func (c *GeneralController) RegisterRoutes(r chi.Router) {
	r.Get("/v1/healthz", c.handleHealth)
	r.Get("/v1/namespaces", c.handleListNamespaces)
	r.Post("/v1/ns/create", c.handleNSCreate)
}

// handleListNamespaces returns {"namespaces": [...]}.
func (c *GeneralController) handleListNamespaces(w http.ResponseWriter, r *http.Request) {
	list, err := c.svc.ListNamespaces(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list namespaces")
		return
	}
	if list == nil {
		list = []string{}
	}
	writeJSON(w, map[string]any{"namespaces": list})
}

// handleHealth returns 200 {"status":"ok"} when the store is readable, 503
// otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (c *GeneralController) handleNSCreate(w http.ResponseWriter, r *http.Request) {
	var req nsCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	meta, err := c.svc.EnsureNamespace(r.Context(), req.Namespace)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, meta)
}
