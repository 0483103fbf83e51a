package scheduler

import (
	"context"
	"errors"
	"fmt"

	"leasing_crm_backend/internal/leads/scoring"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Scorer is the part of the scoring service the worker drives.
type Scorer interface {
	Recalculate(ctx context.Context, leadID uuid.UUID) (scoring.Result, error)
	RecalculateAll(ctx context.Context) (int, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	scorer Scorer
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scorer Scorer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger: newAsynqLogger(log),
	})

	return newWorker(server, scorer, log), nil
}

func newWorker(server *asynq.Server, scorer Scorer, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		scorer: scorer,
		log:    log,
	}

	mux.HandleFunc(TaskLeadScore, w.handleLeadScore)
	mux.HandleFunc(TaskRescoreAll, w.handleRescoreAll)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleLeadScore(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadScorePayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%w: invalid lead id %q", asynq.SkipRetry, payload.LeadID)
	}

	result, err := w.scorer.Recalculate(ctx, leadID)
	if errors.Is(err, scoring.ErrLeadNotFound) {
		// Deleted between enqueue and processing.
		w.log.JobEvent(TaskLeadScore, "lead_gone", nil)
		return nil
	}
	if err != nil {
		w.log.JobEvent(TaskLeadScore, "failed", err)
		return err
	}

	w.log.WithContext(ctx).Debug("lead scored",
		"leadId", leadID,
		"score", result.Score,
		"priority", result.Priority,
		"reason", payload.Reason,
	)
	return nil
}

func (w *Worker) handleRescoreAll(ctx context.Context, _ *asynq.Task) error {
	count, err := w.scorer.RecalculateAll(ctx)
	if err != nil {
		w.log.JobEvent(TaskRescoreAll, "failed", err)
		return err
	}
	w.log.Info("rescored all leads", "count", count)
	return nil
}
