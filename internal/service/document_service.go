package service

import (
	"context"
	"encoding/json"
	"time"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/specification"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/pkg/chunker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	chunker          *chunker.Chunker
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	chunker *chunker.Chunker,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		chunker:          chunker,
	}
}

// Create stores a document with its chunks and queues the embedding work.
// Chunks are written synchronously so the document is immediately complete;
// only the vector generation is deferred.
func (c *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	chunks := c.chunker.Chunk(req.Text)
	if len(chunks) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "document has no content")
	}

	document := entity.ContextDocument{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for _, ch := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkIndex: ch.Index,
			Content:    ch.Text,
			CreatedAt:  time.Now(),
		})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishEmbedTaskMessage{
		SourceType: constant.SourceTypeDocumentChunk,
		SourceId:   document.Id,
	})
	if err != nil {
		return nil, err
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.CreateDocumentResponse{
		Id:         document.Id,
		ChunkCount: len(chunkEntities),
	}, nil
}

// Delete removes the document, its chunks and their embeddings in one
// transaction, so a concept search never surfaces a chunk of a half-deleted
// document.
func (c *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	chunks, err := uow.DocumentChunkRepository().FindByDocumentId(ctx, id)
	if err != nil {
		return err
	}
	chunkIds := make([]uuid.UUID, 0, len(chunks))
	for _, ch := range chunks {
		chunkIds = append(chunkIds, ch.Id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if len(chunkIds) > 0 {
		if err := uow.EmbeddingRepository().DeleteBySourceIds(ctx, constant.SourceTypeDocumentChunk, chunkIds); err != nil {
			return err
		}
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
