package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leasing_crm_backend/internal/leads/maintenance"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/db"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	dryRun := flag.Bool("dry-run", false, "report the rewrites without writing them")
	region := flag.String("region", cfg.GetPhoneDefaultRegion(), "default region for numbers without a country code")
	flag.Parse()

	log := logger.New(cfg.Env)
	if !phone.IsSupportedRegion(*region) {
		log.Error("unsupported region", "region", *region)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	backfill := maintenance.NewPhoneBackfill(repository.New(pool), *region, *dryRun, log)
	result, err := backfill.Run(ctx)
	if err != nil {
		log.Error("phone backfill failed", "error", err)
		os.Exit(1)
	}

	log.Info("phone backfill complete",
		"dryRun", *dryRun,
		"region", phone.NormalizeRegion(*region),
		"scanned", result.Scanned,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
	)
	for _, id := range result.Invalid {
		fmt.Println(id)
	}
}
