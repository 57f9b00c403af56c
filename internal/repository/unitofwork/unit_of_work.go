package unitofwork

import (
	"context"

	"inquiry-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	MessageRepository() contract.MessageRepository
	SessionMetadataRepository() contract.SessionMetadataRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	EmbeddingRepository() contract.EmbeddingRepository
}
