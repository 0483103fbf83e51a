package transport

import "github.com/google/uuid"

type BulkScoreRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"max=500"`
}
