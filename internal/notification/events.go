package notification

import (
	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/notification/sse"
)

// streamedEvents lists the domain events pushed to connected clients.
var streamedEvents = []string{
	events.LeadCreated{}.EventName(),
	events.LeadUpdated{}.EventName(),
	events.LeadDeleted{}.EventName(),
	events.LeadScored{}.EventName(),
}

// toStreamEvent maps a domain event to the payload sent to SSE clients.
func toStreamEvent(event events.Event) (sse.Event, bool) {
	switch e := event.(type) {
	case events.LeadCreated:
		return sse.Event{Type: sse.EventLeadCreated, LeadID: e.LeadID, Message: e.Name, Data: e}, true
	case events.LeadUpdated:
		return sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Data: e}, true
	case events.LeadDeleted:
		return sse.Event{Type: sse.EventLeadDeleted, LeadID: e.LeadID, Data: e}, true
	case events.LeadScored:
		return sse.Event{Type: sse.EventLeadScored, LeadID: e.LeadID, Data: e}, true
	default:
		return sse.Event{}, false
	}
}
