package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/internal/leads/scoring"
	"leasing_crm_backend/internal/notification"
	"leasing_crm_backend/internal/scheduler"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/db"
	"leasing_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	rescoreNow := flag.Bool("rescore-now", false, "queue a full rescoring run at startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; scheduler has nothing to do")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer func() { _ = rdb.Close() }()

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	// Scores computed here reach API clients through the relay.
	notification.NewRelay(rdb, log).RegisterHandlers(eventBus)

	scorer := scoring.New(repository.New(pool), scoring.NewCache(rdb, cfg.GetScoreCacheTTL()), eventBus, log)

	worker, err := scheduler.NewWorker(cfg, scorer, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize rescore schedule", "error", err)
		panic("failed to initialize rescore schedule: " + err.Error())
	}

	if *rescoreNow {
		client, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scoring task client", "error", err)
			panic("failed to initialize scoring task client: " + err.Error())
		}
		if err := client.EnqueueRescoreAll(ctx); err != nil {
			log.JobEvent(scheduler.TaskRescoreAll, "enqueue_failed", err)
		} else {
			log.JobEvent(scheduler.TaskRescoreAll, "enqueued", nil)
		}
		_ = client.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		periodic.Run(gctx)
		return nil
	})
	_ = g.Wait()
	log.Info("scheduler stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
