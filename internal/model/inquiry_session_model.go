package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquirySession struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId    *uuid.UUID     `gorm:"type:uuid;index"`
	Title        string         `gorm:"type:text;not null"`
	Imported     bool           `gorm:"default:false"` // archive imports are never auto-processed
	LastActiveAt time.Time      `gorm:"index;not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (InquirySession) TableName() string {
	return "inquiry_sessions"
}
