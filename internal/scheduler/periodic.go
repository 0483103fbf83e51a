package scheduler

import (
	"context"
	"fmt"
	"time"

	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

const defaultRescoreCron = "@daily"

// Periodic enqueues the full rescoring run on a cron schedule.
type Periodic struct {
	scheduler *asynq.Scheduler
	spec      string
	queue     string
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	spec, err := rescoreSpec(cfg.GetRescoreCron())
	if err != nil {
		return nil, err
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	p := &Periodic{
		spec:  spec,
		queue: queueName(cfg),
		log:   log,
	}
	p.scheduler = asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   newAsynqLogger(log),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.JobEvent(TaskRescoreAll, "enqueue_failed", err)
				return
			}
			log.JobEvent(TaskRescoreAll, "enqueued", nil)
		},
	})

	if _, err := p.scheduler.Register(spec, NewRescoreAllTask(), asynq.Queue(p.queue), asynq.MaxRetry(1)); err != nil {
		return nil, fmt.Errorf("register rescore schedule: %w", err)
	}
	return p, nil
}

// Run blocks until ctx is done.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	if err := p.scheduler.Start(); err != nil {
		p.log.Error("rescore scheduler failed to start", "error", err)
		return
	}
	p.log.Info("rescore scheduler started", "cron", p.spec)

	<-ctx.Done()
	p.scheduler.Shutdown()
}

// rescoreSpec validates a five-field cron expression, falling back to the default when empty.
func rescoreSpec(raw string) (string, error) {
	if raw == "" {
		raw = defaultRescoreCron
	}
	if _, err := cron.ParseStandard(raw); err != nil {
		return "", fmt.Errorf("invalid RESCORE_CRON %q: %w", raw, err)
	}
	return raw, nil
}
