package maintenance

import (
	"context"
	"testing"

	"leasing_crm_backend/internal/leads/leadstest"
	"leasing_crm_backend/platform/logger"
)

func TestSampleLeads(t *testing.T) {
	leads, err := SampleLeads("US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 12 {
		t.Fatalf("expected 12 sample leads, got %d", len(leads))
	}

	first := leads[0]
	if first.Name != "Sarah Mitchell" || first.Phone != "+12065551234" || first.Status != "Tour Completed" {
		t.Fatalf("unexpected first lead %+v", first)
	}
	if first.MoveInDate == nil || first.MoveInDate.Format("2006-01-02") != "2025-12-01" {
		t.Fatalf("unexpected move-in date %v", first.MoveInDate)
	}
	for _, lead := range leads {
		if lead.Phone[0] != '+' || lead.Occupants < 1 {
			t.Errorf("%s: phone %q occupants %d", lead.Name, lead.Phone, lead.Occupants)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	leads, err := SampleLeads("US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store := leadstest.New()

	first, err := Seed(context.Background(), store, leads, logger.Discard())
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	second, err := Seed(context.Background(), store, leads, logger.Discard())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if first.Added != 12 || second.Added != 0 || second.Skipped != 12 {
		t.Fatalf("unexpected results %+v then %+v", first, second)
	}
	if store.Len() != 12 {
		t.Fatalf("expected 12 stored leads, got %d", store.Len())
	}
}
