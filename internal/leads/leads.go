// Package leads provides lead management functionality.
// This file defines the public API of the leads bounded context.
// Only types and interfaces defined here should be imported by other domains.
package leads

import (
	"context"
	"time"

	"leasing_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Lead represents the minimal lead information that can be shared with other domains.
type Lead struct {
	ID         uuid.UUID
	Name       string
	Status     string
	UnitType   string
	MoveInDate *time.Time
	CreatedAt  time.Time
}

// Directory defines the public interface for lead lookups.
// Other domains should depend on this interface, not on concrete implementations.
type Directory interface {
	// ListLeads returns every lead, oldest first.
	ListLeads(ctx context.Context) ([]Lead, error)
}

type directory struct {
	repo repository.LeadLister
}

// NewDirectory exposes a lead store through the public Directory interface.
func NewDirectory(repo repository.LeadLister) Directory {
	return &directory{repo: repo}
}

func (d *directory) ListLeads(ctx context.Context) ([]Lead, error) {
	rows, err := d.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Lead, len(rows))
	for i, row := range rows {
		out[i] = Lead{
			ID:         row.ID,
			Name:       row.Name,
			Status:     row.Status,
			UnitType:   row.UnitType,
			MoveInDate: row.MoveInDate,
			CreatedAt:  row.CreatedAt,
		}
	}
	return out, nil
}
