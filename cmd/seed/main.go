package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leasing_crm_backend/internal/leads/maintenance"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/migrations"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/db"
	"leasing_crm_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, db.MigrationSource(cfg.GetMigrationsDir(), migrations.FS), log); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	leads, err := maintenance.SampleLeads(cfg.GetPhoneDefaultRegion())
	if err != nil {
		log.Error("failed to load sample leads", "error", err)
		os.Exit(1)
	}

	result, err := maintenance.Seed(ctx, repository.New(pool), leads, log)
	if err != nil {
		log.Error("seeding failed", "error", err, "added", result.Added)
		os.Exit(1)
	}
	log.Info("database seeding complete", "added", result.Added, "skipped", result.Skipped)
}
