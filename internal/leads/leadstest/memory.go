// Package leadstest provides an in-memory lead store for tests.
package leadstest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"leasing_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Store is a concurrency-safe in-memory repository.LeadRepository. Its clock
// advances one minute per write so creation order is deterministic.
type Store struct {
	mu     sync.Mutex
	leads  map[uuid.UUID]repository.Lead
	scores map[uuid.UUID]repository.Score
	clock  time.Time
}

var _ repository.LeadRepository = (*Store)(nil)
var _ repository.PhoneRewriter = (*Store)(nil)

func New() *Store {
	return &Store{
		leads:  make(map[uuid.UUID]repository.Lead),
		scores: make(map[uuid.UUID]repository.Score),
		clock:  time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Put stores lead as-is, bypassing validation. Used to seed legacy rows.
func (s *Store) Put(lead repository.Lead) repository.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = s.tick()
		lead.UpdatedAt = lead.CreatedAt
	}
	s.leads[lead.ID] = lead
	return lead
}

// Lead returns the stored lead with id.
func (s *Store) Lead(id uuid.UUID) (repository.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	return lead, ok
}

// Len returns the number of stored leads.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads)
}

// Scores returns a copy of the persisted scores.
func (s *Store) Scores() map[uuid.UUID]repository.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]repository.Score, len(s.scores))
	for id, score := range s.scores {
		out[id] = score
	}
	return out
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *Store) Create(_ context.Context, p repository.CreateLeadParams) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.leads {
		if strings.EqualFold(existing.Email, p.Email) {
			return repository.Lead{}, repository.ErrDuplicateEmail
		}
	}
	now := s.tick()
	lead := repository.Lead{
		ID: uuid.New(), Name: p.Name, Email: p.Email, Phone: p.Phone, Status: p.Status,
		MoveInDate: p.MoveInDate, UnitType: p.UnitType, Occupants: p.Occupants, Pets: p.Pets,
		Notes: p.Notes, Address: p.Address, Employer: p.Employer, MoveReason: p.MoveReason,
		CreatedAt: now, UpdatedAt: now,
	}
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *Store) Update(_ context.Context, id uuid.UUID, p repository.UpdateLeadParams) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	if p.Email != nil {
		for otherID, other := range s.leads {
			if otherID != id && strings.EqualFold(other.Email, *p.Email) {
				return repository.Lead{}, repository.ErrDuplicateEmail
			}
		}
	}

	assign(&lead.Name, p.Name)
	assign(&lead.Email, p.Email)
	assign(&lead.Phone, p.Phone)
	assign(&lead.Status, p.Status)
	assign(&lead.UnitType, p.UnitType)
	assign(&lead.Occupants, p.Occupants)
	assign(&lead.Pets, p.Pets)
	assign(&lead.Notes, p.Notes)
	assign(&lead.Address, p.Address)
	assign(&lead.Employer, p.Employer)
	assign(&lead.MoveReason, p.MoveReason)
	if p.MoveInDateSet {
		lead.MoveInDate = p.MoveInDate
	}

	lead.UpdatedAt = s.tick()
	s.leads[id] = lead
	return lead, nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repository.Lead, error) {
	return s.Update(ctx, id, repository.UpdateLeadParams{Status: &status})
}

func (s *Store) UpdatePhone(_ context.Context, id uuid.UUID, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.Phone = phone
	s.leads[id] = lead
	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.leads, id)
	delete(s.scores, id)
	return nil
}

// ordered returns leads by creation time. Callers hold s.mu.
func (s *Store) ordered() []repository.Lead {
	all := make([]repository.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		all = append(all, lead)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all
}

// List filters like the SQL store but always orders by creation time.
func (s *Store) List(_ context.Context, p repository.ListParams) ([]repository.Lead, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(p.Search))
	matched := make([]repository.Lead, 0)
	for _, lead := range s.ordered() {
		if p.Status != nil && lead.Status != *p.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(lead.Name), query) && !strings.Contains(strings.ToLower(lead.Email), query) {
			continue
		}
		matched = append(matched, lead)
	}

	total := len(matched)
	if p.Offset >= total {
		return []repository.Lead{}, total, nil
	}
	end := total
	if p.Limit > 0 && p.Offset+p.Limit < total {
		end = p.Offset + p.Limit
	}
	return matched[p.Offset:end], total, nil
}

func (s *Store) CountAll(context.Context) (int, error) {
	return s.Len(), nil
}

func (s *Store) ListStatuses(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	statuses := make([]string, 0)
	for _, lead := range s.ordered() {
		if !seen[lead.Status] {
			seen[lead.Status] = true
			statuses = append(statuses, lead.Status)
		}
	}
	return statuses, nil
}

func (s *Store) ListAll(context.Context) ([]repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordered(), nil
}

func (s *Store) ListByIDs(_ context.Context, ids []uuid.UUID) ([]repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]repository.Lead, 0, len(ids))
	for _, lead := range s.ordered() {
		if wanted[lead.ID] {
			out = append(out, lead)
		}
	}
	return out, nil
}

func (s *Store) UpsertScore(_ context.Context, score repository.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[score.LeadID] = score
	return nil
}
