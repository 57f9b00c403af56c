package dto

import "github.com/google/uuid"

type SynthesizeRequest struct {
	Query       string      `json:"query" validate:"required"`
	SessionIds  []uuid.UUID `json:"session_ids,omitempty" validate:"omitempty,max=10"`
	ProjectId   *uuid.UUID  `json:"project_id,omitempty"`
	MaxSessions int         `json:"max_sessions,omitempty" validate:"omitempty,min=1,max=10"`
	Threshold   float64     `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
	Provider    string      `json:"provider,omitempty" validate:"omitempty,oneof=ollama gemini"`
	Model       string      `json:"model,omitempty"`
}

type SynthesisSourceResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	Title         string    `json:"title"`
	Score         float64   `json:"score"`
	HasUnresolved bool      `json:"has_unresolved"`
}

type SynthesizeResponse struct {
	Answer           string                    `json:"answer"`
	Sources          []SynthesisSourceResponse `json:"sources"`
	SessionsAnalyzed int                       `json:"sessions_analyzed"`
}
