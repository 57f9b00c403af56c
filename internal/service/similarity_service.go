package service

import (
	"context"
	"math"
	"strings"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/specification"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/pkg/embedding"
	"inquiry-be/pkg/ranking"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultSearchLimit     = 10
	defaultSearchThreshold = 0.3
	minConceptQueryLen     = 2
)

type ISimilarityService interface {
	SearchSessions(ctx context.Context, req *dto.SimilaritySearchRequest) ([]*dto.SessionMatchResponse, error)
	RelatedSessions(ctx context.Context, sessionId uuid.UUID, limit int) ([]*dto.SessionMatchResponse, error)
	RelatedDocuments(ctx context.Context, sessionId uuid.UUID, limit int) ([]*dto.DocumentMatchResponse, error)
	ConceptSearch(ctx context.Context, query string, limit int, projectId *uuid.UUID) (*dto.ConceptSearchResponse, error)
}

type similarityService struct {
	uowFactory       unitofwork.RepositoryFactory
	embeddingGateway *embedding.Gateway
}

func NewSimilarityService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingGateway *embedding.Gateway,
) ISimilarityService {
	return &similarityService{
		uowFactory:       uowFactory,
		embeddingGateway: embeddingGateway,
	}
}

// SearchSessions ranks stored session summaries against an ad-hoc query.
// An unreachable embedding stack degrades to an empty result set, never an
// error: search is an enrichment, not a dependency.
func (s *similarityService) SearchSessions(ctx context.Context, req *dto.SimilaritySearchRequest) ([]*dto.SessionMatchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = defaultSearchThreshold
	}

	res := s.embeddingGateway.Embed(req.Query, embedding.TaskRetrievalQuery)
	if res == nil {
		return []*dto.SessionMatchResponse{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	matches, err := s.rankSessionSummaries(ctx, uow, res.Values, ranking.Options{
		Limit:     limit,
		Threshold: threshold,
		ExcludeId: req.ExcludeSessionId,
	})
	if err != nil {
		return nil, err
	}

	return s.sessionResponses(ctx, uow, matches)
}

// RelatedSessions ranks other sessions against one session's own stored
// summary embedding. A session without an embedding yet (metadata not
// generated, or embedding task still pending) has no relations.
func (s *similarityService) RelatedSessions(ctx context.Context, sessionId uuid.UUID, limit int) ([]*dto.SessionMatchResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	own, err := uow.EmbeddingRepository().FindBySource(ctx, constant.SourceTypeSessionSummary, sessionId)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return []*dto.SessionMatchResponse{}, nil
	}

	matches, err := s.rankSessionSummaries(ctx, uow, own.Values, ranking.Options{
		Limit:     limit,
		Threshold: defaultSearchThreshold,
		ExcludeId: &sessionId,
	})
	if err != nil {
		return nil, err
	}

	return s.sessionResponses(ctx, uow, matches)
}

// RelatedDocuments finds context documents relevant to one session by
// ranking all chunk embeddings against the session's stored summary
// embedding, then collapsing to one match per owning document. A session
// without a summary embedding yet has no document relations.
func (s *similarityService) RelatedDocuments(ctx context.Context, sessionId uuid.UUID, limit int) ([]*dto.DocumentMatchResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	query, err := uow.EmbeddingRepository().FindBySource(ctx, constant.SourceTypeSessionSummary, sessionId)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return []*dto.DocumentMatchResponse{}, nil
	}

	all, err := uow.EmbeddingRepository().FindAllByType(ctx, constant.SourceTypeDocumentChunk)
	if err != nil {
		return nil, err
	}

	// Rank with headroom: several chunks of the same document may occupy top
	// slots before dedupe collapses them.
	chunkMatches := ranking.Rank(query.Values, toCandidates(all), ranking.Options{
		Limit:     limit * 4,
		Threshold: defaultSearchThreshold,
	})
	if len(chunkMatches) == 0 {
		return []*dto.DocumentMatchResponse{}, nil
	}

	docMatches, err := s.dedupeToDocuments(ctx, uow, chunkMatches)
	if err != nil {
		return nil, err
	}
	if len(docMatches) > limit {
		docMatches = docMatches[:limit]
	}

	return s.documentResponses(ctx, uow, docMatches)
}

// ConceptSearch runs one query against both memory surfaces: session
// summaries and document chunks. Scores are rounded for display. Too-short
// queries are rejected before any provider call.
func (s *similarityService) ConceptSearch(ctx context.Context, query string, limit int, projectId *uuid.UUID) (*dto.ConceptSearchResponse, error) {
	if len(strings.TrimSpace(query)) < minConceptQueryLen {
		return nil, fiber.NewError(fiber.StatusBadRequest, "query too short")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	empty := &dto.ConceptSearchResponse{
		Sessions:  []dto.SessionMatchResponse{},
		Documents: []dto.DocumentMatchResponse{},
	}

	if !s.embeddingGateway.Available() {
		return empty, nil
	}
	res := s.embeddingGateway.Embed(query, embedding.TaskRetrievalQuery)
	if res == nil {
		return empty, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessionMatches, err := s.rankSessionSummaries(ctx, uow, res.Values, ranking.Options{
		Limit:     limit,
		Threshold: defaultSearchThreshold,
	})
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionResponses(ctx, uow, sessionMatches)
	if err != nil {
		return nil, err
	}

	chunkEmbeddings, err := uow.EmbeddingRepository().FindAllByType(ctx, constant.SourceTypeDocumentChunk)
	if err != nil {
		return nil, err
	}
	chunkMatches := ranking.Rank(res.Values, toCandidates(chunkEmbeddings), ranking.Options{
		Limit:     limit * 4,
		Threshold: defaultSearchThreshold,
	})
	docMatches, err := s.dedupeToDocuments(ctx, uow, chunkMatches)
	if err != nil {
		return nil, err
	}
	if len(docMatches) > limit {
		docMatches = docMatches[:limit]
	}
	documents, err := s.documentResponses(ctx, uow, docMatches)
	if err != nil {
		return nil, err
	}

	out := &dto.ConceptSearchResponse{
		Sessions:  []dto.SessionMatchResponse{},
		Documents: []dto.DocumentMatchResponse{},
	}
	for _, m := range sessions {
		if projectId != nil && !s.sessionInProject(ctx, uow, m.SessionId, projectId) {
			continue
		}
		m.Score = roundScore(m.Score)
		out.Sessions = append(out.Sessions, *m)
	}
	for _, m := range documents {
		m.Score = roundScore(m.Score)
		out.Documents = append(out.Documents, *m)
	}
	return out, nil
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func (s *similarityService) sessionInProject(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, projectId *uuid.UUID) bool {
	sess, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByProjectID{ProjectID: *projectId},
	)
	return err == nil && sess != nil
}

func toCandidates(embeddings []*entity.Embedding) []ranking.Candidate {
	candidates := make([]ranking.Candidate, 0, len(embeddings))
	for _, e := range embeddings {
		candidates = append(candidates, ranking.Candidate{
			SourceId:  e.SourceId,
			Values:    e.Values,
			Dimension: e.Dimension,
		})
	}
	return candidates
}

func (s *similarityService) rankSessionSummaries(ctx context.Context, uow unitofwork.UnitOfWork, query []float32, opts ranking.Options) ([]ranking.Match, error) {
	embeddings, err := uow.EmbeddingRepository().FindAllByType(ctx, constant.SourceTypeSessionSummary)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(query, toCandidates(embeddings), opts), nil
}

// dedupeToDocuments resolves chunk-level matches to their owning documents,
// keeping each document's best chunk score. Chunks whose document vanished
// are dropped.
func (s *similarityService) dedupeToDocuments(ctx context.Context, uow unitofwork.UnitOfWork, chunkMatches []ranking.Match) ([]ranking.Match, error) {
	if len(chunkMatches) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(chunkMatches))
	for _, m := range chunkMatches {
		ids = append(ids, m.SourceId)
	}
	chunks, err := uow.DocumentChunkRepository().FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	ownerOf := make(map[uuid.UUID]uuid.UUID, len(chunks))
	for _, c := range chunks {
		ownerOf[c.Id] = c.DocumentId
	}
	return ranking.DedupeByOwner(chunkMatches, ownerOf), nil
}

// sessionResponses hydrates ranked session matches with titles, activity and
// orientation blurbs, preserving rank order. Sessions deleted since their
// embedding was stored fall out here.
func (s *similarityService) sessionResponses(ctx context.Context, uow unitofwork.UnitOfWork, matches []ranking.Match) ([]*dto.SessionMatchResponse, error) {
	if len(matches) == 0 {
		return []*dto.SessionMatchResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.SourceId)
	}

	sessions, err := uow.SessionRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	sessionById := make(map[uuid.UUID]*entity.InquirySession, len(sessions))
	for _, sess := range sessions {
		sessionById[sess.Id] = sess
	}

	metas, err := uow.SessionMetadataRepository().FindBySessionIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	metaById := make(map[uuid.UUID]*entity.SessionMetadata, len(metas))
	for _, m := range metas {
		metaById[m.SessionId] = m
	}

	response := make([]*dto.SessionMatchResponse, 0, len(matches))
	for _, m := range matches {
		sess, ok := sessionById[m.SourceId]
		if !ok {
			continue
		}
		item := &dto.SessionMatchResponse{
			SessionId: sess.Id,
			Title:     sess.Title,
			Score:     m.Score,
		}
		lastActive := sess.LastActiveAt
		item.LastActiveAt = &lastActive
		if meta, ok := metaById[sess.Id]; ok {
			item.Orientation = meta.OrientationBlurb
		}
		response = append(response, item)
	}
	return response, nil
}

func (s *similarityService) documentResponses(ctx context.Context, uow unitofwork.UnitOfWork, matches []ranking.Match) ([]*dto.DocumentMatchResponse, error) {
	if len(matches) == 0 {
		return []*dto.DocumentMatchResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.SourceId)
	}
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	docById := make(map[uuid.UUID]*entity.ContextDocument, len(documents))
	for _, d := range documents {
		docById[d.Id] = d
	}

	response := make([]*dto.DocumentMatchResponse, 0, len(matches))
	for _, m := range matches {
		doc, ok := docById[m.SourceId]
		if !ok {
			continue
		}
		response = append(response, &dto.DocumentMatchResponse{
			DocumentId: doc.Id,
			Title:      doc.Name,
			Score:      m.Score,
		})
	}
	return response, nil
}
