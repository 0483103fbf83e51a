package scoring

import (
	"time"

	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"
)

const unknownBucket = "Unknown"

// ConversionAnalysis summarizes the pipeline. Leased and Approved leads count
// as conversions.
type ConversionAnalysis struct {
	TotalLeads     int            `json:"totalLeads"`
	ByStatus       map[string]int `json:"byStatus"`
	ByUnitType     map[string]int `json:"byUnitType"`
	Converted      int            `json:"converted"`
	ConversionRate float64        `json:"conversionRate"`
}

func ConversionFactors(leads []repository.Lead) ConversionAnalysis {
	analysis := ConversionAnalysis{
		ByStatus:   make(map[string]int),
		ByUnitType: make(map[string]int),
	}

	for _, lead := range leads {
		analysis.TotalLeads++
		analysis.ByStatus[bucket(lead.Status)]++
		analysis.ByUnitType[bucket(lead.UnitType)]++
		if domain.IsConverted(lead.Status) {
			analysis.Converted++
		}
	}

	if analysis.TotalLeads > 0 {
		analysis.ConversionRate = float64(analysis.Converted) / float64(analysis.TotalLeads) * 100
	}
	return analysis
}

func bucket(value string) string {
	if value == "" {
		return unknownBucket
	}
	return value
}

// BulkResult is the dashboard view over many leads.
type BulkResult struct {
	Scores              []Result `json:"scores"`
	HighPriorityCount   int      `json:"highPriorityCount"`
	MediumPriorityCount int      `json:"mediumPriorityCount"`
	LowPriorityCount    int      `json:"lowPriorityCount"`
}

func BulkScore(leads []repository.Lead, now time.Time) BulkResult {
	result := BulkResult{Scores: make([]Result, 0, len(leads))}
	for _, lead := range leads {
		scored := Score(lead, now)
		result.Scores = append(result.Scores, scored)
		switch scored.Priority {
		case PriorityHigh:
			result.HighPriorityCount++
		case PriorityMedium:
			result.MediumPriorityCount++
		default:
			result.LowPriorityCount++
		}
	}
	return result
}
