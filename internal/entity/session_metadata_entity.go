package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionMetadata struct {
	SessionId        uuid.UUID
	OrientationBlurb string
	UnresolvedEdge   string
	LastPivot        string
	GeneratedAt      time.Time
}

// StaleFor reports whether the summary predates the session's most recent
// activity.
func (m *SessionMetadata) StaleFor(lastActiveAt time.Time) bool {
	return m.GeneratedAt.Before(lastActiveAt)
}
