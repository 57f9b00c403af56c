package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Embedding stores one vector per (source_type, source_id). The vector is a
// JSON array of floats in a text column; similarity ranking loads vectors
// into memory and scans linearly, so no database-side vector type is needed.
// Dimension and ModelIdentifier travel with the row so vectors from a
// different embedding model are never compared against it silently.
type Embedding struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceType      string         `gorm:"type:text;not null;index:idx_embeddings_source,priority:1"`
	SourceId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_embeddings_source,priority:2"`
	Vector          datatypes.JSON `gorm:"type:text"`
	Dimension       int            `gorm:"not null"`
	ModelIdentifier string         `gorm:"type:text;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (Embedding) TableName() string {
	return "embeddings"
}
