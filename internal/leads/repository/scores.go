package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrScoreNotFound = errors.New("lead score not found")

// Score is the persisted result of the most recent scoring run for a lead.
type Score struct {
	LeadID            uuid.UUID
	Score             int
	Priority          string
	RecommendedAction string
	Urgency           float64
	Engagement        float64
	Completeness      float64
	Demand            float64
	Version           string
	ScoredAt          time.Time
}

func (r *Repository) UpsertScore(ctx context.Context, score Score) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_scores (
			lead_id, score, priority, recommended_action, urgency, engagement, completeness, demand, version, scored_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (lead_id) DO UPDATE SET
			score = EXCLUDED.score,
			priority = EXCLUDED.priority,
			recommended_action = EXCLUDED.recommended_action,
			urgency = EXCLUDED.urgency,
			engagement = EXCLUDED.engagement,
			completeness = EXCLUDED.completeness,
			demand = EXCLUDED.demand,
			version = EXCLUDED.version,
			scored_at = EXCLUDED.scored_at
	`, score.LeadID, score.Score, score.Priority, score.RecommendedAction,
		score.Urgency, score.Engagement, score.Completeness, score.Demand, score.Version, score.ScoredAt)
	return err
}

func (r *Repository) GetScore(ctx context.Context, leadID uuid.UUID) (Score, error) {
	var s Score
	err := r.pool.QueryRow(ctx, `
		SELECT lead_id, score, priority, recommended_action, urgency, engagement, completeness, demand, version, scored_at
		FROM lead_scores WHERE lead_id = $1
	`, leadID).Scan(
		&s.LeadID, &s.Score, &s.Priority, &s.RecommendedAction,
		&s.Urgency, &s.Engagement, &s.Completeness, &s.Demand, &s.Version, &s.ScoredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Score{}, ErrScoreNotFound
	}
	return s, err
}
