package scoring

import (
	"time"

	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

const (
	UrgencyCritical = "Critical"
	UrgencyHigh     = "High"
	UrgencyStandard = "Standard"
)

// FollowUpRecommendation says when and how to contact a lead next.
type FollowUpRecommendation struct {
	LeadID            uuid.UUID `json:"leadId"`
	BestCallTimes     []string  `json:"bestCallTimes"`
	ResponseWindow    string    `json:"responseWindow"`
	RecommendedMethod string    `json:"recommendedMethod"`
	UrgencyLevel      string    `json:"urgencyLevel"`
}

// FollowUp derives contact timing from when the inquiry arrived and how soon
// the lead wants to move. A lead without a move-in date is treated as standard.
func FollowUp(lead repository.Lead, now time.Time) FollowUpRecommendation {
	rec := FollowUpRecommendation{LeadID: lead.ID}
	rec.UrgencyLevel, rec.ResponseWindow = urgencyLevel(lead.MoveInDate, now)

	inquiry := lead.CreatedAt
	if inquiry.IsZero() {
		inquiry = now
	}
	rec.BestCallTimes, rec.RecommendedMethod = contactWindow(inquiry)

	switch lead.Status {
	case domain.StatusTourScheduled:
		rec.BestCallTimes = []string{"24 hours before tour", "Morning of tour"}
		rec.RecommendedMethod = "Text reminder preferred, email backup"
	case domain.StatusTourCompleted:
		rec.BestCallTimes = []string{"Within 2 hours of tour", "Next morning if evening tour"}
		rec.RecommendedMethod = "Thank you text, then call for feedback"
	}

	return rec
}

func urgencyLevel(moveInDate *time.Time, now time.Time) (string, string) {
	if moveInDate == nil {
		return UrgencyStandard, "Within 24 hours"
	}
	days := daysUntil(*moveInDate, now)
	switch {
	case days < 30:
		return UrgencyCritical, "Within 1 hour"
	case days < 60:
		return UrgencyHigh, "Within 2-4 hours"
	default:
		return UrgencyStandard, "Within 24 hours"
	}
}

func contactWindow(inquiry time.Time) ([]string, string) {
	hour := inquiry.Hour()
	switch {
	case inquiry.Weekday() == time.Saturday || inquiry.Weekday() == time.Sunday:
		return []string{"Today 11:00 AM - 1:00 PM", "Today 3:00 PM - 6:00 PM"},
			"Call directly - weekend inquirers are usually ready to talk"
	case hour >= 9 && hour <= 12:
		return []string{"Today 12:00 PM - 1:00 PM (lunch break)", "Today 5:30 PM - 7:00 PM (after work)"},
			"Email immediately, call at suggested times"
	case hour > 12 && hour <= 17:
		return []string{"Today 5:00 PM - 7:00 PM", "Tomorrow 10:00 AM - 11:00 AM"},
			"Email with virtual tour link, follow up with call"
	default:
		return []string{"Next business day 10:00 AM - 12:00 PM", "Next business day 5:00 PM - 7:00 PM"},
			"Email immediately (they're researching), call next day"
	}
}
