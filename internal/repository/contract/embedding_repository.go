package contract

import (
	"context"

	"inquiry-be/internal/entity"

	"github.com/google/uuid"
)

// EmbeddingRepository is the vector store. At most one embedding exists per
// (sourceType, sourceId); Store supersedes any previous row atomically.
type EmbeddingRepository interface {
	// Store deletes any embedding for the same key and inserts the new one
	// inside one transaction, so readers never observe two rows for a key.
	Store(ctx context.Context, embedding *entity.Embedding) error
	FindBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) (*entity.Embedding, error)
	FindAllByType(ctx context.Context, sourceType string) ([]*entity.Embedding, error)
	Exists(ctx context.Context, sourceType string, sourceId uuid.UUID) (bool, error)
	DeleteBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) error
	DeleteBySourceIds(ctx context.Context, sourceType string, sourceIds []uuid.UUID) error
}
