package scoring

import (
	"context"
	"errors"
	"time"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/platform/apperr"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrLeadNotFound = apperr.NotFound("lead not found")

const (
	maxBulkIDs         = 500
	rescoreParallelism = 8
)

// Store is the lead data the scoring service reads and writes.
type Store interface {
	repository.LeadLister
	repository.ScoreWriter
}

// Service computes lead scores, caches them and persists them.
type Service struct {
	store Store
	cache *Cache
	bus   events.Bus
	log   *logger.Logger
	now   func() time.Time
}

func New(store Store, cache *Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		bus:   bus,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Score returns the cached score for a lead or computes a fresh one.
func (s *Service) Score(ctx context.Context, leadID uuid.UUID) (Result, error) {
	if cached, ok, err := s.cache.Get(ctx, leadID); err != nil {
		s.log.Warn("lead score cache read failed", "error", err, "leadId", leadID)
	} else if ok {
		return cached, nil
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return Result{}, err
	}

	result := Score(lead, s.now())
	s.storeInCache(ctx, result)
	return result, nil
}

// Recalculate scores a lead, persists the result and announces it.
func (s *Service) Recalculate(ctx context.Context, leadID uuid.UUID) (Result, error) {
	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return Result{}, err
	}
	return s.recalculate(ctx, lead)
}

func (s *Service) recalculate(ctx context.Context, lead repository.Lead) (Result, error) {
	result := Score(lead, s.now())

	if err := s.store.UpsertScore(ctx, repository.Score{
		LeadID:            result.LeadID,
		Score:             result.Score,
		Priority:          result.Priority,
		RecommendedAction: result.RecommendedAction,
		Urgency:           result.Factors.Urgency,
		Engagement:        result.Factors.Engagement,
		Completeness:      result.Factors.Completeness,
		Demand:            result.Factors.Demand,
		Version:           result.Version,
		ScoredAt:          result.ScoredAt,
	}); err != nil {
		return Result{}, err
	}

	s.storeInCache(ctx, result)
	metrics.ObserveScore(result.Priority)

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadScored{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    result.LeadID,
			Score:     result.Score,
			Priority:  result.Priority,
		})
	}
	return result, nil
}

// RecalculateAll rescores every lead. Urgency depends on the current date, so
// stored scores go stale without this.
func (s *Service) RecalculateAll(ctx context.Context) (int, error) {
	leads, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rescoreParallelism)
	for _, lead := range leads {
		g.Go(func() error {
			_, err := s.recalculate(gctx, lead)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(leads), nil
}

func (s *Service) FollowUp(ctx context.Context, leadID uuid.UUID) (FollowUpRecommendation, error) {
	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return FollowUpRecommendation{}, err
	}
	return FollowUp(lead, s.now()), nil
}

// BulkScore scores the given leads, or every lead when ids is empty. Unknown
// ids are skipped.
func (s *Service) BulkScore(ctx context.Context, ids []uuid.UUID) (BulkResult, error) {
	if len(ids) > maxBulkIDs {
		return BulkResult{}, apperr.Validation("too many lead ids").WithDetails(map[string]int{"max": maxBulkIDs})
	}

	var (
		leads []repository.Lead
		err   error
	)
	if len(ids) == 0 {
		leads, err = s.store.ListAll(ctx)
	} else {
		leads, err = s.store.ListByIDs(ctx, ids)
	}
	if err != nil {
		return BulkResult{}, err
	}

	return BulkScore(leads, s.now()), nil
}

func (s *Service) ConversionFactors(ctx context.Context) (ConversionAnalysis, error) {
	leads, err := s.store.ListAll(ctx)
	if err != nil {
		return ConversionAnalysis{}, err
	}
	return ConversionFactors(leads), nil
}

// Invalidate drops the cached score of a lead.
func (s *Service) Invalidate(ctx context.Context, leadID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, leadID); err != nil {
		s.log.Warn("lead score cache invalidation failed", "error", err, "leadId", leadID)
	}
}

func (s *Service) getLead(ctx context.Context, leadID uuid.UUID) (repository.Lead, error) {
	lead, err := s.store.GetByID(ctx, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, ErrLeadNotFound
	}
	return lead, err
}

func (s *Service) storeInCache(ctx context.Context, result Result) {
	if err := s.cache.Set(ctx, result); err != nil {
		s.log.Warn("lead score cache write failed", "error", err, "leadId", result.LeadID)
	}
}
