package entity

import (
	"time"

	"github.com/google/uuid"
)

type Embedding struct {
	Id              uuid.UUID
	SourceType      string
	SourceId        uuid.UUID
	Values          []float32
	Dimension       int
	ModelIdentifier string
	CreatedAt       time.Time
}
