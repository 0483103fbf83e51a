package scheduler

import (
	"context"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/platform/logger"
)

// RegisterScoreTriggers queues a scoring task whenever a lead is created or
// edited. Enqueue failures are logged and do not fail the originating request.
func RegisterScoreTriggers(bus events.Bus, enqueuer ScoreEnqueuer, log *logger.Logger) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadCreated)
		if !ok {
			return nil
		}
		if err := enqueuer.EnqueueLeadScore(ctx, e.LeadID, "created"); err != nil {
			log.JobEvent(TaskLeadScore, "enqueue_failed", err)
		}
		return nil
	}))

	bus.Subscribe(events.LeadUpdated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadUpdated)
		if !ok {
			return nil
		}
		reason := "updated"
		if e.StatusChanged {
			reason = "status_changed"
		}
		if err := enqueuer.EnqueueLeadScore(ctx, e.LeadID, reason); err != nil {
			log.JobEvent(TaskLeadScore, "enqueue_failed", err)
		}
		return nil
	}))
}
