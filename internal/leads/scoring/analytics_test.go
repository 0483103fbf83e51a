package scoring

import (
	"testing"

	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"
)

func TestConversionFactors(t *testing.T) {
	leads := []repository.Lead{
		{Status: domain.StatusLeased, UnitType: domain.UnitTwoBedroom},
		{Status: domain.StatusApproved, UnitType: domain.UnitStudio},
		{Status: domain.StatusContacted, UnitType: domain.UnitTwoBedroom},
		{Status: domain.StatusNotInterested},
	}

	got := ConversionFactors(leads)
	if got.TotalLeads != 4 || got.Converted != 2 || got.ConversionRate != 50 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.ByStatus[domain.StatusLeased] != 1 || got.ByStatus[domain.StatusContacted] != 1 {
		t.Fatalf("unexpected status counts %v", got.ByStatus)
	}
	if got.ByUnitType[domain.UnitTwoBedroom] != 2 || got.ByUnitType["Unknown"] != 1 {
		t.Fatalf("unexpected unit counts %v", got.ByUnitType)
	}
}

func TestConversionFactorsEmpty(t *testing.T) {
	got := ConversionFactors(nil)
	if got.TotalLeads != 0 || got.ConversionRate != 0 || got.ByStatus == nil {
		t.Fatalf("unexpected empty analysis %+v", got)
	}
}

func TestBulkScoreCountsPriorities(t *testing.T) {
	leads := []repository.Lead{
		{Name: "High", Status: domain.StatusApproved, MoveInDate: daysFromNow(3), UnitType: domain.UnitTwoBedroom,
			Notes: "ready to sign this week", Employer: "Acme", MoveReason: "Upsizing"},
		{Name: "Medium", Status: domain.StatusContacted, MoveInDate: daysFromNow(3), UnitType: domain.UnitStudio,
			Notes: "ready to sign this week", Employer: "Acme", MoveReason: "Upsizing"},
		{Name: "Low", Status: domain.StatusNewInquiry},
		{Name: "Low too", Status: domain.StatusNotInterested},
	}

	got := BulkScore(leads, now)
	if len(got.Scores) != 4 {
		t.Fatalf("expected 4 scores, got %d", len(got.Scores))
	}
	if got.HighPriorityCount != 1 || got.MediumPriorityCount != 1 || got.LowPriorityCount != 2 {
		t.Fatalf("unexpected counts %+v", got)
	}
}
