package contract

import (
	"context"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.ContextDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContextDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextDocument, error)
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.DocumentChunk, error)
}
