package controllers

import (
	"github.com/rzbill/eventreg/internal/changelog"
	"github.com/rzbill/eventreg/internal/registry"
)

type nsCreateReq struct {
	Namespace string `json:"namespace"`
}

type createEventReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
}

type CreateEventResp struct {
	EventID uint32 `json:"event_id"`
}

// updateEventReq replaces every mutable field; an omitted status means Active.
type updateEventReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   uint64          `json:"start_date"`
	EndDate     uint64          `json:"end_date"`
	Status      registry.Status `json:"status"`
}

type ListEventsResp struct {
	Events []registry.Event `json:"events"`
}

type CountResp struct {
	Count uint32 `json:"count"`
}

type ChangesResp struct {
	Items []changelog.Entry `json:"items"`
	// Next is the start token of the following page, 0 when exhausted.
	Next uint64 `json:"next"`
}
