package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "METADATA_REGENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; concrete constructors below build
// valid instances.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewMetadataRegenerated marks a session whose summary metadata was rebuilt
// by the staleness scheduler.
func NewMetadataRegenerated(sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: "METADATA_REGENERATED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewEmbeddingFailed records a best-effort embedding task that gave up. The
// triggering request has already succeeded; this event is the observability
// sink for the degradation.
func NewEmbeddingFailed(sourceType string, sourceId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: "EMBEDDING_FAILED",
		Data: map[string]interface{}{
			"source_type": sourceType,
			"source_id":   sourceId.String(),
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewMetadataFailed records a scheduler tick skipping one session after its
// regeneration failed.
func NewMetadataFailed(sessionId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: "METADATA_FAILED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
