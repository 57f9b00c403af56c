package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContextDocument struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	CreatedAt  time.Time
}
