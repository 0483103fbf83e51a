// Package notification pushes lead activity to connected clients in response
// to domain events. Domain modules publish events and never talk to SSE
// connections directly.
package notification

import (
	"context"

	"leasing_crm_backend/internal/events"
	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/internal/notification/sse"
	"leasing_crm_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sse *sse.Service
	log *logger.Logger
}

// New creates a new notification module.
func New(log *logger.Logger) *Module {
	return &Module{
		sse: sse.New(log),
		log: log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterRoutes registers the lead event stream.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/leads/stream", m.sse.Handler())
}

// SSE returns the stream service.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	for _, name := range streamedEvents {
		bus.Subscribe(name, m)
	}
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to connected clients.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	if streamEvent, ok := toStreamEvent(event); ok {
		m.sse.Broadcast(streamEvent)
	}
	return nil
}

// ForwardRelay streams events relayed from other processes until ctx is done.
func (m *Module) ForwardRelay(ctx context.Context, relay *Relay) {
	if err := relay.Run(ctx, m.sse.Broadcast); err != nil {
		m.log.Error("notification relay stopped", "error", err)
	}
}

// Close disconnects every stream client.
func (m *Module) Close() {
	m.sse.Close()
}

var _ apphttp.Module = (*Module)(nil)
