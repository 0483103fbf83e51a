package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/notification/sse"
	"leasing_crm_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// RelayChannel is the Redis pub/sub channel carrying lead events between processes.
const RelayChannel = "crm:lead_events"

// Relay moves stream events between processes over Redis pub/sub. The scheduler
// publishes the events its workers raise; the API process forwards them to its
// SSE clients.
type Relay struct {
	rdb     *redis.Client
	channel string
	log     *logger.Logger
}

func NewRelay(rdb *redis.Client, log *logger.Logger) *Relay {
	return &Relay{rdb: rdb, channel: RelayChannel, log: log}
}

// Publish sends one event to the channel.
func (r *Relay) Publish(ctx context.Context, event sse.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal relay event: %w", err)
	}
	return r.rdb.Publish(ctx, r.channel, data).Err()
}

// RegisterHandlers publishes every streamed domain event raised on bus.
func (r *Relay) RegisterHandlers(bus events.Bus) {
	handler := events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		streamEvent, ok := toStreamEvent(event)
		if !ok {
			return nil
		}
		return r.Publish(ctx, streamEvent)
	})
	for _, name := range streamedEvents {
		bus.Subscribe(name, handler)
	}
}

// Run delivers relayed events to sink until ctx is done.
func (r *Relay) Run(ctx context.Context, sink func(sse.Event)) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed so nothing published after Run
	// starts is missed.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event sse.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.log.Warn("relay event decode failed", "error", err)
				continue
			}
			sink(event)
		}
	}
}
