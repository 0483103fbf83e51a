// Package chat answers free-form questions about the leasing pipeline.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"leasing_crm_backend/internal/leads"
)

// FallbackAnswer is returned to the caller when no assistant could answer.
const FallbackAnswer = "Sorry, I could not process your request."

var ErrAssistantUnavailable = errors.New("chat assistant not configured")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

// Assistant answers a question given the conversation so far.
type Assistant interface {
	Ask(ctx context.Context, question string, history []Message) (string, error)
}

type unavailable struct{}

func (unavailable) Ask(context.Context, string, []Message) (string, error) {
	return "", ErrAssistantUnavailable
}

const (
	followUpAfter  = 48 * time.Hour
	moveSoonWindow = 7 * 24 * time.Hour
)

// PipelineSummary is a compact view of the lead pipeline handed to the model.
type PipelineSummary struct {
	Total          int
	ByStatus       map[string]int
	ToursScheduled int
	MovingThisWeek int
	NeedsFollowUp  []string
}

// Summarize counts leads per status and picks out the ones that need attention.
// A lead needs follow-up when it is still New Inquiry or Contacted two days after
// it came in.
func Summarize(all []leads.Lead, now time.Time) PipelineSummary {
	summary := PipelineSummary{Total: len(all), ByStatus: make(map[string]int)}
	for _, lead := range all {
		summary.ByStatus[lead.Status]++

		if lead.Status == "Tour Scheduled" {
			summary.ToursScheduled++
		}
		if lead.MoveInDate != nil {
			until := lead.MoveInDate.Sub(now)
			if until >= 0 && until <= moveSoonWindow {
				summary.MovingThisWeek++
			}
		}
		if (lead.Status == "New Inquiry" || lead.Status == "Contacted") && now.Sub(lead.CreatedAt) >= followUpAfter {
			summary.NeedsFollowUp = append(summary.NeedsFollowUp, lead.Name)
		}
	}
	return summary
}

// Prompt renders the summary as plain text for a system instruction.
func (s PipelineSummary) Prompt() string {
	var b strings.Builder
	b.WriteString("You are a leasing assistant for an apartment community. ")
	b.WriteString("Answer questions about the lead pipeline briefly and only from the data below.\n\n")
	fmt.Fprintf(&b, "Total leads: %d\n", s.Total)

	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "- %s: %d\n", status, s.ByStatus[status])
	}

	fmt.Fprintf(&b, "Tours scheduled: %d\n", s.ToursScheduled)
	fmt.Fprintf(&b, "Moving in within 7 days: %d\n", s.MovingThisWeek)
	if len(s.NeedsFollowUp) == 0 {
		b.WriteString("Leads needing follow-up: none\n")
	} else {
		fmt.Fprintf(&b, "Leads needing follow-up: %s\n", strings.Join(s.NeedsFollowUp, ", "))
	}
	return b.String()
}
