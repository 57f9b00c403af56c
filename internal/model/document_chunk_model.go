package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is owned exclusively by its document and deleted with it.
// ChunkIndex values are contiguous from 0 within one document.
type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	ChunkIndex int       `gorm:"default:0"`
	Content    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
