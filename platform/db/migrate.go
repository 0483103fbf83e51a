package db

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"leasing_crm_backend/platform/logger"
)

// MigrationSource picks the migration files: dir on disk when set, otherwise
// the embedded set.
func MigrationSource(dir string, embedded fs.FS) fs.FS {
	if strings.TrimSpace(dir) == "" {
		return embedded
	}
	return os.DirFS(dir)
}

// RunMigrations applies all pending goose migrations found at the root of fsys.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *logger.Logger) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		log.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
