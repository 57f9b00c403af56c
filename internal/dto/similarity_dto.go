package dto

import (
	"time"

	"github.com/google/uuid"
)

type SimilaritySearchRequest struct {
	Query            string     `json:"query" validate:"required"`
	Limit            int        `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Threshold        float64    `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
	ExcludeSessionId *uuid.UUID `json:"exclude_session_id,omitempty"`
}

type SessionMatchResponse struct {
	SessionId    uuid.UUID  `json:"session_id"`
	Title        string     `json:"title"`
	Score        float64    `json:"score"`
	Orientation  string     `json:"orientation,omitempty"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

type DocumentMatchResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	Score      float64   `json:"score"`
}

type ConceptSearchResponse struct {
	Sessions  []SessionMatchResponse  `json:"sessions"`
	Documents []DocumentMatchResponse `json:"documents"`
}
