package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionMetadata holds the derived session summary. One row per session,
// overwritten (not versioned) on regeneration. GeneratedAt is the staleness
// watermark: the row is stale when it predates the session's last activity.
type SessionMetadata struct {
	SessionId        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrientationBlurb string    `gorm:"type:text"`
	UnresolvedEdge   string    `gorm:"type:text"`
	LastPivot        string    `gorm:"type:text"`
	GeneratedAt      time.Time `gorm:"not null"`
}

func (SessionMetadata) TableName() string {
	return "session_metadata"
}
