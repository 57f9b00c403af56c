package entity

import (
	"time"

	"github.com/google/uuid"
)

type InquiryMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
