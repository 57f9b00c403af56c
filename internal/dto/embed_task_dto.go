package dto

import "github.com/google/uuid"

// PublishEmbedTaskMessage asks the consumer to (re)build the embedding for
// one source. For documents the SourceId is the document id; the consumer
// fans out over its chunks.
type PublishEmbedTaskMessage struct {
	SourceType string    `json:"source_type"`
	SourceId   uuid.UUID `json:"source_id"`
}
