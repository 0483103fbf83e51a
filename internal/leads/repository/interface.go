package repository

import (
	"context"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	CountAll(ctx context.Context) (int, error)
	ListStatuses(ctx context.Context) ([]string, error)
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeadLister loads leads in bulk for scoring, analytics and the assistant.
type LeadLister interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	ListAll(ctx context.Context) ([]Lead, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Lead, error)
}

// ScoreWriter persists scoring results.
type ScoreWriter interface {
	UpsertScore(ctx context.Context, score Score) error
}

// PhoneRewriter is used by the phone backfill.
type PhoneRewriter interface {
	ListAll(ctx context.Context) ([]Lead, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, phone string) error
}

// LeadRepository is the complete lead store.
type LeadRepository interface {
	LeadReader
	LeadWriter
	LeadLister
	ScoreWriter
}

var _ LeadRepository = (*Repository)(nil)
var _ PhoneRewriter = (*Repository)(nil)
