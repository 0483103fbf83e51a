// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"
	"time"

	"leasing_crm_backend/internal/events"
	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/internal/leads/handler"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/internal/leads/scoring"
	"leasing_crm_backend/internal/leads/service"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ModuleConfig is the configuration the leads module reads.
type ModuleConfig interface {
	config.PhoneConfig
	GetScoreCacheTTL() time.Duration
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler   *handler.Handler
	scoring   *handler.ScoringHandler
	service   *service.Service
	scorer    *scoring.Service
	directory Directory
}

// NewModule creates and initializes the leads module with all its dependencies.
// rdb may be nil, in which case scores are computed on every request.
func NewModule(pool *pgxpool.Pool, rdb *redis.Client, eventBus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)

	svc := service.New(repo, eventBus, log, cfg.GetPhoneDefaultRegion())
	scorer := scoring.New(repo, scoring.NewCache(rdb, cfg.GetScoreCacheTTL()), eventBus, log)

	// Cached scores are stale as soon as the lead changes.
	invalidate := events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		switch e := event.(type) {
		case events.LeadUpdated:
			scorer.Invalidate(ctx, e.LeadID)
		case events.LeadDeleted:
			scorer.Invalidate(ctx, e.LeadID)
		}
		return nil
	})
	eventBus.Subscribe(events.LeadUpdated{}.EventName(), invalidate)
	eventBus.Subscribe(events.LeadDeleted{}.EventName(), invalidate)

	return &Module{
		handler:   handler.New(svc, val),
		scoring:   handler.NewScoringHandler(scorer, val),
		service:   svc,
		scorer:    scorer,
		directory: NewDirectory(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead management service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Scoring returns the lead scoring service for external use.
func (m *Module) Scoring() *scoring.Service {
	return m.scorer
}

// Directory returns the read-only lead directory for other domains.
func (m *Module) Directory() Directory {
	return m.directory
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All leads routes require authentication
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
	m.scoring.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
