// Package scoring ranks leasing leads and recommends the next follow-up.
//
// The model is deterministic: a lead plus the current time always produce the
// same score, so results can be cached and recomputed in the background.
package scoring

import (
	"fmt"
	"math"
	"time"

	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2025-leasing-v1"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	highPriorityThreshold   = 75
	mediumPriorityThreshold = 50

	minNotesLength = 10
)

// weights of each factor in the composite score. They sum to 1.
var weights = struct {
	urgency      float64
	engagement   float64
	completeness float64
	demand       float64
}{
	urgency:      0.35,
	engagement:   0.30,
	completeness: 0.20,
	demand:       0.15,
}

// statusScores rates how far a lead has progressed through the pipeline.
var statusScores = map[string]float64{
	domain.StatusNewInquiry:           10,
	domain.StatusContacted:            20,
	domain.StatusTourScheduled:        40,
	domain.StatusTourCompleted:        60,
	domain.StatusApplicationSubmitted: 80,
	domain.StatusApproved:             90,
}

const defaultStatusScore = 5

// unitDemand is the relative demand per unit type; 2 bedroom units lease fastest.
var unitDemand = map[string]float64{
	domain.UnitStudio:       0.7,
	domain.UnitOneBedroom:   0.8,
	domain.UnitTwoBedroom:   0.9,
	domain.UnitThreeBedroom: 0.6,
}

const defaultUnitDemand = 0.5

// Factors holds the weighted contribution of each factor to the score.
type Factors struct {
	Urgency      float64 `json:"urgency"`
	Engagement   float64 `json:"engagement"`
	Completeness float64 `json:"completeness"`
	Demand       float64 `json:"demand"`
}

func (f Factors) total() float64 {
	return f.Urgency + f.Engagement + f.Completeness + f.Demand
}

// Result is a computed lead score.
type Result struct {
	LeadID            uuid.UUID `json:"leadId"`
	Score             int       `json:"score"`
	Priority          string    `json:"priority"`
	RecommendedAction string    `json:"recommendedAction"`
	Factors           Factors   `json:"factors"`
	Version           string    `json:"version"`
	ScoredAt          time.Time `json:"scoredAt"`
}

// Score computes the score of lead at now.
func Score(lead repository.Lead, now time.Time) Result {
	factors := Factors{
		Urgency:      urgencyScore(lead.MoveInDate, now) * weights.urgency,
		Engagement:   statusScore(lead.Status) * weights.engagement,
		Completeness: completenessPoints(lead) * 10 * weights.completeness,
		Demand:       demandFactor(lead.UnitType) * 100 * weights.demand,
	}

	score := clampScore(factors.total())
	priority := priorityFor(score)

	return Result{
		LeadID:            lead.ID,
		Score:             score,
		Priority:          priority,
		RecommendedAction: recommendedAction(lead, score, priority),
		Factors:           factors,
		Version:           scoreVersion,
		ScoredAt:          now.UTC(),
	}
}

// daysUntil returns whole days from now until date, rounded down.
func daysUntil(date time.Time, now time.Time) int {
	return int(math.Floor(date.Sub(now).Hours() / 24))
}

func urgencyScore(moveInDate *time.Time, now time.Time) float64 {
	if moveInDate == nil {
		return 20
	}
	days := daysUntil(*moveInDate, now)
	switch {
	case days < 30:
		return 100
	case days < 60:
		return 50
	default:
		return 20
	}
}

func statusScore(status string) float64 {
	if score, ok := statusScores[status]; ok {
		return score
	}
	return defaultStatusScore
}

func completenessPoints(lead repository.Lead) float64 {
	points := 0.0
	if len(lead.Notes) > minNotesLength {
		points++
	}
	if lead.Employer != "" {
		points++
	}
	if lead.MoveReason != "" {
		points++
	}
	return points
}

func demandFactor(unitType string) float64 {
	if demand, ok := unitDemand[unitType]; ok {
		return demand
	}
	return defaultUnitDemand
}

func priorityFor(score int) string {
	switch {
	case score >= highPriorityThreshold:
		return PriorityHigh
	case score >= mediumPriorityThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func recommendedAction(lead repository.Lead, score int, priority string) string {
	switch {
	case lead.Status == domain.StatusTourScheduled:
		return "Send tour reminder 24hrs before + parking instructions"
	case lead.Status == domain.StatusTourCompleted && score > 60:
		return "Send application link with fee waiver (limited time)"
	case lead.Status == domain.StatusApplicationSubmitted:
		return "Fast-track application review - high conversion probability"
	}

	switch priority {
	case PriorityHigh:
		return fmt.Sprintf("Hot lead! Call immediately - %s is ready to move", lead.Name)
	case PriorityMedium:
		return fmt.Sprintf("Schedule tour ASAP for %s", lead.UnitType)
	default:
		return "Send welcome email and add to nurture campaign"
	}
}

// clampScore truncates toward zero and bounds the result to 0-100.
func clampScore(value float64) int {
	truncated := int(value)
	if truncated < 0 {
		return 0
	}
	if truncated > 100 {
		return 100
	}
	return truncated
}
