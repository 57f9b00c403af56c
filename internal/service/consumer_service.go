package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/pkg/embedding"
	"inquiry-be/pkg/events"
	"inquiry-be/pkg/metadata"
	pktNats "inquiry-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	uowFactory       unitofwork.RepositoryFactory
	embeddingGateway *embedding.Gateway
	eventPublisher   *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingGateway *embedding.Gateway,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		uowFactory:       uowFactory,
		embeddingGateway: embeddingGateway,
		eventPublisher:   eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedTaskMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed task: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embed task %s/%s", payload.SourceType, payload.SourceId)

	var err error
	switch payload.SourceType {
	case constant.SourceTypeSessionSummary:
		err = cs.embedSessionSummary(ctx, payload.SourceId)
	case constant.SourceTypeDocumentChunk:
		err = cs.embedDocumentChunks(ctx, payload.SourceId)
	default:
		log.Printf("[ERROR] Unknown embed task source type: %s", payload.SourceType)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Embed task %s/%s failed: %v", payload.SourceType, payload.SourceId, err)
		msg.Nack() // Retriable: DB down, etc.
		return
	}

	msg.Ack()
}

// embedSessionSummary rebuilds the single session-level embedding from the
// session's metadata row. A missing row or an unreachable embedding backend
// is terminal for this task, not retriable: the request that queued the task
// has already succeeded and the degradation is reported via event.
func (cs *consumerService) embedSessionSummary(ctx context.Context, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	meta, err := uow.SessionMetadataRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}
	if meta == nil {
		log.Printf("[WARN] No metadata for session %s, skipping embed", sessionId)
		return nil
	}

	fields := metadata.Fields{
		OrientationBlurb: meta.OrientationBlurb,
		UnresolvedEdge:   meta.UnresolvedEdge,
		LastPivot:        meta.LastPivot,
	}

	res := cs.embeddingGateway.Embed(fields.EmbeddingText(), embedding.TaskRetrievalDocument)
	if res == nil {
		cs.publishEmbeddingFailed(ctx, constant.SourceTypeSessionSummary, sessionId, "all embedding backends failed")
		return nil
	}

	return uow.EmbeddingRepository().Store(ctx, &entity.Embedding{
		Id:              uuid.New(),
		SourceType:      constant.SourceTypeSessionSummary,
		SourceId:        sessionId,
		Values:          res.Values,
		Dimension:       res.Dimension,
		ModelIdentifier: res.Model,
		CreatedAt:       time.Now(),
	})
}

// embedDocumentChunks fans out over the chunks of one document, one embedding
// row per chunk keyed by the chunk id.
func (cs *consumerService) embedDocumentChunks(ctx context.Context, documentId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.DocumentChunkRepository().FindByDocumentId(ctx, documentId)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		log.Printf("[WARN] Document %s has no chunks, skipping embed", documentId)
		return nil
	}

	for _, chunk := range chunks {
		res := cs.embeddingGateway.Embed(chunk.Content, embedding.TaskRetrievalDocument)
		if res == nil {
			cs.publishEmbeddingFailed(ctx, constant.SourceTypeDocumentChunk, chunk.Id, "all embedding backends failed")
			continue
		}

		if err := uow.EmbeddingRepository().Store(ctx, &entity.Embedding{
			Id:              uuid.New(),
			SourceType:      constant.SourceTypeDocumentChunk,
			SourceId:        chunk.Id,
			Values:          res.Values,
			Dimension:       res.Dimension,
			ModelIdentifier: res.Model,
			CreatedAt:       time.Now(),
		}); err != nil {
			return err
		}
	}

	log.Printf("[INFO] Embedded %d chunks for document %s", len(chunks), documentId)
	return nil
}

func (cs *consumerService) publishEmbeddingFailed(ctx context.Context, sourceType string, sourceId uuid.UUID, reason string) {
	if cs.eventPublisher == nil {
		return
	}
	if err := cs.eventPublisher.Publish(ctx, events.NewEmbeddingFailed(sourceType, sourceId, reason)); err != nil {
		log.Printf("[WARN] Failed to publish EMBEDDING_FAILED event: %v", err)
	}
}
