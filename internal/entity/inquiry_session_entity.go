package entity

import (
	"time"

	"github.com/google/uuid"
)

type InquirySession struct {
	Id           uuid.UUID
	ProjectId    *uuid.UUID
	Title        string
	Imported     bool
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
