package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasing_crm_backend/internal/chat"
	"leasing_crm_backend/internal/events"
	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/internal/http/router"
	"leasing_crm_backend/internal/leads"
	"leasing_crm_backend/internal/notification"
	"leasing_crm_backend/internal/phone"
	"leasing_crm_backend/internal/scheduler"
	"leasing_crm_backend/migrations"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/db"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/metrics"
	"leasing_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

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
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, db.MigrationSource(cfg.GetMigrationsDir(), migrations.FS), log)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	health := map[string]apphttp.HealthChecker{"database": pool}

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		health["redis"] = redisPinger{rdb}
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	scoreClient, closeScoreClient := initScoreClient(cfg, log)
	if closeScoreClient != nil {
		defer closeScoreClient()
		scheduler.RegisterScoreTriggers(eventBus, scoreClient, log)
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module streams lead events to connected clients
	notificationModule := notification.New(log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.Close()
	if rdb != nil {
		// Scores computed by the scheduler arrive over Redis.
		go notificationModule.ForwardRelay(ctx, notification.NewRelay(rdb, log))
	}

	leadsModule := leads.NewModule(pool, rdb, eventBus, val, cfg, log)

	chatModule, err := chat.NewModule(ctx, cfg, leadsModule.Directory(), val, log)
	if err != nil {
		log.Error("failed to initialize chat module", "error", err)
		panic("failed to initialize chat module: " + err.Error())
	}

	phoneModule := phone.NewModule(cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			leadsModule,
			notificationModule,
			chatModule,
			phoneModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Close streams first so Shutdown does not wait on them.
		notificationModule.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func initRedis(ctx context.Context, cfg config.SchedulerConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; score caching and background scoring disabled")
		return nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to connect to redis; continuing without it", "error", err)
		return nil
	}
	return rdb
}

func initScoreClient(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ScoreEnqueuer, func()) {
	if !cfg.IsSchedulerEnabled() {
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scoring task client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
