package maintenance

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/phone"

	"gopkg.in/yaml.v3"
)

//go:embed seed_leads.yaml
var sampleLeadsYAML []byte

type sampleLead struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Status     string `yaml:"status"`
	MoveInDate string `yaml:"moveInDate"`
	UnitType   string `yaml:"unitType"`
	Occupants  int    `yaml:"occupants"`
	Pets       string `yaml:"pets"`
	Notes      string `yaml:"notes"`
	Address    string `yaml:"address"`
	Employer   string `yaml:"employer"`
	MoveReason string `yaml:"moveReason"`
}

// SampleLeads returns the demo leasing pipeline with phones in E.164.
func SampleLeads(region string) ([]repository.CreateLeadParams, error) {
	var raw []sampleLead
	if err := yaml.Unmarshal(sampleLeadsYAML, &raw); err != nil {
		return nil, fmt.Errorf("decode sample leads: %w", err)
	}

	out := make([]repository.CreateLeadParams, 0, len(raw))
	for _, s := range raw {
		res := phone.Canonicalize(s.Phone, region)
		if !res.OK() {
			return nil, fmt.Errorf("sample lead %s: %w", s.Name, res.Err)
		}

		params := repository.CreateLeadParams{
			Name:       s.Name,
			Email:      s.Email,
			Phone:      res.Value,
			Status:     s.Status,
			UnitType:   s.UnitType,
			Occupants:  max(s.Occupants, 1),
			Pets:       s.Pets,
			Notes:      s.Notes,
			Address:    s.Address,
			Employer:   s.Employer,
			MoveReason: s.MoveReason,
		}
		if s.MoveInDate != "" {
			date, err := time.Parse("2006-01-02", s.MoveInDate)
			if err != nil {
				return nil, fmt.Errorf("sample lead %s: %w", s.Name, err)
			}
			params.MoveInDate = &date
		}
		out = append(out, params)
	}
	return out, nil
}

type LeadCreator interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
}

type SeedResult struct {
	Added   int
	Skipped int
}

// Seed inserts leads, skipping any whose email already exists so it can be
// run repeatedly.
func Seed(ctx context.Context, store LeadCreator, leads []repository.CreateLeadParams, log *logger.Logger) (SeedResult, error) {
	var result SeedResult
	for _, params := range leads {
		lead, err := store.Create(ctx, params)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("seed %s: %w", params.Name, err)
		}
		log.Info("seeded lead", "leadId", lead.ID, "name", lead.Name)
		result.Added++
	}
	return result, nil
}
