package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContextDocument struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ContextDocument) TableName() string {
	return "context_documents"
}
