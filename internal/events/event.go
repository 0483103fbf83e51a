// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/google/uuid"

	"leasing_crm_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadUpdated is published when lead fields or the status change.
type LeadUpdated struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	Status        string    `json:"status"`
	StatusChanged bool      `json:"statusChanged"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadDeleted is published after a lead has been removed.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// LeadScored is published when a fresh score was computed for a lead.
type LeadScored struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Score    int       `json:"score"`
	Priority string    `json:"priority"`
}

func (e LeadScored) EventName() string { return "leads.lead.scored" }
