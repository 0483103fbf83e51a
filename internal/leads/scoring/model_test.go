package scoring

import (
	"testing"
	"time"

	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

var now = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

func daysFromNow(days int) *time.Time {
	d := now.AddDate(0, 0, days)
	return &d
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		lead     repository.Lead
		score    int
		priority string
		action   string
	}{
		{
			name: "tour completed with strong score",
			lead: repository.Lead{
				Name: "Sarah Mitchell", Status: domain.StatusTourCompleted, MoveInDate: daysFromNow(21),
				UnitType: domain.UnitTwoBedroom, Employer: "Microsoft", MoveReason: "Upsizing",
			},
			score:    70,
			priority: PriorityMedium,
			action:   "Send application link with fee waiver (limited time)",
		},
		{
			name: "approved and moving soon",
			lead: repository.Lead{
				Name: "David Park", Status: domain.StatusApproved, MoveInDate: daysFromNow(10),
				UnitType: domain.UnitTwoBedroom, Notes: "Wants a south facing unit", Employer: "Amazon", MoveReason: "Job Relocation",
			},
			score:    81,
			priority: PriorityHigh,
			action:   "Hot lead! Call immediately - David Park is ready to move",
		},
		{
			name: "application submitted",
			lead: repository.Lead{
				Name: "Lisa Thompson", Status: domain.StatusApplicationSubmitted, MoveInDate: daysFromNow(10),
				UnitType: domain.UnitTwoBedroom, Notes: "Needs covered parking", Employer: "Boeing", MoveReason: "Downsizing",
			},
			score:    78,
			priority: PriorityHigh,
			action:   "Fast-track application review - high conversion probability",
		},
		{
			name: "contacted studio",
			lead: repository.Lead{
				Name: "Alex Rivera", Status: domain.StatusContacted, MoveInDate: daysFromNow(5),
				UnitType: domain.UnitStudio, Notes: "Works from home often", Employer: "Self", MoveReason: "Other",
			},
			score:    57,
			priority: PriorityMedium,
			action:   "Schedule tour ASAP for Studio",
		},
		{
			name:     "new inquiry without details",
			lead:     repository.Lead{Name: "Ken Doll", Status: domain.StatusNewInquiry},
			score:    17,
			priority: PriorityLow,
			action:   "Send welcome email and add to nurture campaign",
		},
		{
			name:     "tour scheduled overrides action",
			lead:     repository.Lead{Name: "Ben Jamin", Status: domain.StatusTourScheduled},
			score:    26,
			priority: PriorityLow,
			action:   "Send tour reminder 24hrs before + parking instructions",
		},
		{
			name:     "tour completed with weak score keeps priority action",
			lead:     repository.Lead{Name: "Emily Rodriguez", Status: domain.StatusTourCompleted},
			score:    32,
			priority: PriorityLow,
			action:   "Send welcome email and add to nurture campaign",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.lead.ID = uuid.New()
			got := Score(tt.lead, now)
			if got.Score != tt.score {
				t.Errorf("score = %d, expected %d (factors %+v)", got.Score, tt.score, got.Factors)
			}
			if got.Priority != tt.priority {
				t.Errorf("priority = %q, expected %q", got.Priority, tt.priority)
			}
			if got.RecommendedAction != tt.action {
				t.Errorf("action = %q, expected %q", got.RecommendedAction, tt.action)
			}
			if got.LeadID != tt.lead.ID || got.Version != scoreVersion {
				t.Errorf("unexpected metadata %+v", got)
			}
		})
	}
}

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		days     int
		expected float64
	}{
		{-3, 100},
		{0, 100},
		{29, 100},
		{30, 50},
		{59, 50},
		{60, 20},
		{365, 20},
	}
	for _, tt := range tests {
		if got := urgencyScore(daysFromNow(tt.days), now); got != tt.expected {
			t.Errorf("urgencyScore(%d days) = %v, expected %v", tt.days, got, tt.expected)
		}
	}

	if got := urgencyScore(nil, now); got != 20 {
		t.Errorf("missing move-in date should score 20, got %v", got)
	}

	// 29.5 days away rounds down to 29.
	midday := now.Add(12 * time.Hour)
	if got := urgencyScore(daysFromNow(30), midday); got != 100 {
		t.Errorf("expected partial days to round down, got %v", got)
	}
}

func TestCompletenessPoints(t *testing.T) {
	if got := completenessPoints(repository.Lead{Notes: "short"}); got != 0 {
		t.Fatalf("notes of ten characters or fewer do not count, got %v", got)
	}
	if got := completenessPoints(repository.Lead{Notes: "more than ten", Employer: "x", MoveReason: "Other"}); got != 3 {
		t.Fatalf("expected 3 points, got %v", got)
	}
}

func TestClampScore(t *testing.T) {
	tests := map[float64]int{-5: 0, 0: 0, 57.9: 57, 100: 100, 130.2: 100}
	for in, expected := range tests {
		if got := clampScore(in); got != expected {
			t.Errorf("clampScore(%v) = %d, expected %d", in, got, expected)
		}
	}
}
