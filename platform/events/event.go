// Package events is the in-process publish/subscribe layer the CRM modules use
// to react to lead changes without importing each other.
package events

import (
	"context"
	"time"
)

// Event is anything published on a Bus. EventName is the subscription key,
// for example "leads.lead.created".
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events to carry their timestamp.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event with the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

// Handler reacts to one published event. A returned error is logged by
// Publish and surfaced by PublishSync.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error { return f(ctx, event) }

// Bus routes events to the handlers subscribed under their name.
type Bus interface {
	// Publish hands event to every handler in the background.
	Publish(ctx context.Context, event Event)
	// PublishSync waits for every handler and returns the first error.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}
