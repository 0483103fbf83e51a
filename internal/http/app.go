package http

import (
	"context"

	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"
)

// RouterConfig combines the settings the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
}

// HealthChecker is a dependency that /health pings, such as Postgres or Redis.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled by cmd/api and handed to the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health maps a dependency name to its checker. /health reports 503 when
	// any of them fails.
	Health  map[string]HealthChecker
	Modules []Module
}
