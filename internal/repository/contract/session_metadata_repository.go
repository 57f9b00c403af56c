package contract

import (
	"context"

	"inquiry-be/internal/entity"

	"github.com/google/uuid"
)

type SessionMetadataRepository interface {
	// Upsert writes the summary row as a single ON CONFLICT statement, so
	// readers never observe a session with half-written metadata.
	Upsert(ctx context.Context, metadata *entity.SessionMetadata) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionMetadata, error)
	FindBySessionIds(ctx context.Context, sessionIds []uuid.UUID) ([]*entity.SessionMetadata, error)
}
