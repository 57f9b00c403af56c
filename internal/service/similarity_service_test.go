package service

import (
	"context"
	"testing"
	"time"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/pkg/embedding"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newSimilarityFixture(backend embedding.EmbeddingProvider) (*fakeUow, ISimilarityService) {
	uow := newFakeUow()
	gateway := embedding.NewGateway(discardLogger(), backend)
	return uow, NewSimilarityService(&fakeFactory{uow: uow}, gateway)
}

func TestSearchSessionsDegradesToEmptyWhenBackendDown(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{fail: true})
	seedSession(uow, "some inquiry", "", []float32{1, 0})

	matches, err := svc.SearchSessions(context.Background(), &dto.SimilaritySearchRequest{Query: "anything"})
	if err != nil {
		t.Fatalf("SearchSessions() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected empty result when embedding backends are down, got %d", len(matches))
	}
}

func TestSearchSessionsRanksAndHydrates(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{vector: []float32{1, 0}})

	best := seedSession(uow, "close inquiry", "", []float32{1, 0})
	second := seedSession(uow, "near inquiry", "", []float32{0.7, 0.7})
	seedSession(uow, "far inquiry", "", []float32{0, 1})

	matches, err := svc.SearchSessions(context.Background(), &dto.SimilaritySearchRequest{Query: "a query"})
	if err != nil {
		t.Fatalf("SearchSessions() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].SessionId != best || matches[1].SessionId != second {
		t.Error("matches out of rank order")
	}
	if matches[0].Title != "close inquiry" {
		t.Errorf("title not hydrated: %q", matches[0].Title)
	}
	if matches[0].Orientation == "" {
		t.Error("orientation blurb not hydrated from metadata")
	}
}

func TestRelatedSessionsExcludesSelf(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{fail: true})

	self := seedSession(uow, "self inquiry", "", []float32{1, 0})
	other := seedSession(uow, "other inquiry", "", []float32{0.9, 0.1})

	matches, err := svc.RelatedSessions(context.Background(), self, 5)
	if err != nil {
		t.Fatalf("RelatedSessions() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].SessionId != other {
		t.Error("session related to itself")
	}
}

func TestRelatedSessionsWithoutEmbeddingIsEmpty(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{fail: true})
	id := seedSession(uow, "pending inquiry", "", nil)

	matches, err := svc.RelatedSessions(context.Background(), id, 5)
	if err != nil {
		t.Fatalf("RelatedSessions() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("session without a stored embedding should have no relations, got %d", len(matches))
	}
}

func seedDocument(uow *fakeUow, name string, chunkVectors ...[]float32) uuid.UUID {
	id := uuid.New()
	uow.documents.items = append(uow.documents.items, &entity.ContextDocument{
		Id:        id,
		Name:      name,
		CreatedAt: time.Now(),
	})
	for i, vec := range chunkVectors {
		chunk := &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: id,
			ChunkIndex: i,
			Content:    "chunk content",
			CreatedAt:  time.Now(),
		}
		uow.chunks.items = append(uow.chunks.items, chunk)
		if vec != nil {
			uow.embeddings.items = append(uow.embeddings.items, &entity.Embedding{
				Id:         uuid.New(),
				SourceType: constant.SourceTypeDocumentChunk,
				SourceId:   chunk.Id,
				Values:     vec,
				Dimension:  len(vec),
			})
		}
	}
	return id
}

func TestRelatedDocumentsDedupesChunks(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{fail: true})

	sessionId := seedSession(uow, "some inquiry", "", []float32{1, 0})
	// Two chunks of the same document both match; it must appear once with
	// its best score.
	multi := seedDocument(uow, "multi-chunk doc", []float32{1, 0}, []float32{0.8, 0.2})
	other := seedDocument(uow, "other doc", []float32{0.6, 0.4})

	matches, err := svc.RelatedDocuments(context.Background(), sessionId, 5)
	if err != nil {
		t.Fatalf("RelatedDocuments() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].DocumentId != multi {
		t.Error("best document should rank first")
	}
	if matches[1].DocumentId != other {
		t.Error("second document mismatch")
	}
}

func TestRelatedDocumentsWithoutSummaryEmbeddingIsEmpty(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{fail: true})

	sessionId := seedSession(uow, "pending inquiry", "", nil)
	seedDocument(uow, "a doc", []float32{1, 0})

	matches, err := svc.RelatedDocuments(context.Background(), sessionId, 5)
	if err != nil {
		t.Fatalf("RelatedDocuments() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("session without a summary embedding should have no document relations, got %d", len(matches))
	}
}

func TestConceptSearchRejectsShortQuery(t *testing.T) {
	_, svc := newSimilarityFixture(&stubEmbedBackend{vector: []float32{1, 0}})

	_, err := svc.ConceptSearch(context.Background(), "a", 5, nil)
	fiberErr, ok := err.(*fiber.Error)
	if !ok || fiberErr.Code != fiber.StatusBadRequest {
		t.Errorf("expected 400 for short query, got %v", err)
	}
}

func TestConceptSearchSpansBothSurfaces(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{vector: []float32{1, 0}})

	sessionId := seedSession(uow, "matching inquiry", "", []float32{1, 0})
	docId := seedDocument(uow, "matching doc", []float32{0.9, 0.1})

	res, err := svc.ConceptSearch(context.Background(), "a concept", 5, nil)
	if err != nil {
		t.Fatalf("ConceptSearch() error = %v", err)
	}
	if len(res.Sessions) != 1 || res.Sessions[0].SessionId != sessionId {
		t.Errorf("sessions surface mismatch: %+v", res.Sessions)
	}
	if res.Sessions[0].Score != 1.0 {
		t.Errorf("session score should be rounded to 1.0, got %f", res.Sessions[0].Score)
	}
	if len(res.Documents) != 1 || res.Documents[0].DocumentId != docId {
		t.Errorf("documents surface mismatch: %+v", res.Documents)
	}
}

func TestConceptSearchProjectFilter(t *testing.T) {
	uow, svc := newSimilarityFixture(&stubEmbedBackend{vector: []float32{1, 0}})

	projectId := uuid.New()
	inProject := seedSession(uow, "scoped inquiry", "", []float32{1, 0})
	uow.sessions.items[0].ProjectId = &projectId
	seedSession(uow, "unscoped inquiry", "", []float32{0.9, 0.1})

	res, err := svc.ConceptSearch(context.Background(), "a concept", 5, &projectId)
	if err != nil {
		t.Fatalf("ConceptSearch() error = %v", err)
	}
	if len(res.Sessions) != 1 || res.Sessions[0].SessionId != inProject {
		t.Errorf("expected only the in-project session, got %+v", res.Sessions)
	}
}
