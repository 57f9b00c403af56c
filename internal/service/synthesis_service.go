package service

import (
	"context"
	"math"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/specification"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/pkg/embedding"
	"inquiry-be/pkg/llm"
	"inquiry-be/pkg/ranking"
	"inquiry-be/pkg/synthesis"

	"github.com/google/uuid"
)

type ISynthesisService interface {
	Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error)
}

type synthesisService struct {
	uowFactory       unitofwork.RepositoryFactory
	embeddingGateway *embedding.Gateway
	chain            *llm.Chain
	threshold        float64
	maxSessions      int
}

func NewSynthesisService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingGateway *embedding.Gateway,
	chain *llm.Chain,
	threshold float64,
	maxSessions int,
) ISynthesisService {
	return &synthesisService{
		uowFactory:       uowFactory,
		embeddingGateway: embeddingGateway,
		chain:            chain,
		threshold:        threshold,
		maxSessions:      maxSessions,
	}
}

// Synthesize answers a question from past sessions. Sessions named explicitly
// in the request are taken as-is with full relevance; otherwise candidates
// are ranked against the question, thresholded and capped. Selecting nothing
// is a normal outcome answered by the canned fallback, not an error.
func (s *synthesisService) Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	threshold := s.threshold
	if req.Threshold > 0 {
		threshold = req.Threshold
	}
	maxSessions := s.maxSessions
	if req.MaxSessions > 0 {
		maxSessions = req.MaxSessions
	}

	var matches []ranking.Match
	projectId := req.ProjectId
	if len(req.SessionIds) > 0 {
		// Explicit selection bypasses ranking entirely and is used verbatim:
		// the project filter applies only to ranked discovery.
		projectId = nil
		for _, id := range req.SessionIds {
			matches = append(matches, ranking.Match{SourceId: id, Score: 1.0})
		}
	} else {
		ranked, err := s.rankAgainstQuery(ctx, uow, req.Query, threshold, maxSessions)
		if err != nil {
			return nil, err
		}
		matches = ranked
	}

	sessions, err := s.resolveSessions(ctx, uow, matches, projectId)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return &dto.SynthesizeResponse{
			Answer:  synthesis.FallbackAnswer,
			Sources: []dto.SynthesisSourceResponse{},
		}, nil
	}

	snapshots, err := s.buildSnapshots(ctx, uow, sessions)
	if err != nil {
		return nil, err
	}

	provider := s.chain
	if req.Provider != "" {
		provider = provider.Prefer(req.Provider)
	}
	var opts []llm.Option
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}

	answer, err := provider.Generate(ctx, synthesis.BuildPrompt(req.Query, snapshots), opts...)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SynthesisSourceResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		sources = append(sources, dto.SynthesisSourceResponse{
			SessionId:     snap.SessionId,
			Title:         snap.Title,
			Score:         math.Round(snap.Score*100) / 100,
			HasUnresolved: snap.HasUnresolved(),
		})
	}

	return &dto.SynthesizeResponse{
		Answer:           answer,
		Sources:          sources,
		SessionsAnalyzed: len(sources),
	}, nil
}

func (s *synthesisService) rankAgainstQuery(ctx context.Context, uow unitofwork.UnitOfWork, query string, threshold float64, limit int) ([]ranking.Match, error) {
	res := s.embeddingGateway.Embed(query, embedding.TaskRetrievalQuery)
	if res == nil {
		return nil, nil
	}

	embeddings, err := uow.EmbeddingRepository().FindAllByType(ctx, constant.SourceTypeSessionSummary)
	if err != nil {
		return nil, err
	}

	return ranking.Rank(res.Values, toCandidates(embeddings), ranking.Options{
		Limit:     limit,
		Threshold: threshold,
	}), nil
}

type scoredSession struct {
	session *entity.InquirySession
	score   float64
}

// resolveSessions hydrates matches and applies the optional project filter.
// The filter runs after ranking, so a project-scoped synthesis may use fewer
// than maxSessions sources rather than backfilling with weaker ones.
func (s *synthesisService) resolveSessions(ctx context.Context, uow unitofwork.UnitOfWork, matches []ranking.Match, projectId *uuid.UUID) ([]scoredSession, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.SourceId)
	}
	specs := []specification.Specification{specification.ByIDs{IDs: ids}}
	if projectId != nil {
		specs = append(specs, specification.ByProjectID{ProjectID: *projectId})
	}
	sessions, err := uow.SessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.InquirySession, len(sessions))
	for _, sess := range sessions {
		byId[sess.Id] = sess
	}

	out := make([]scoredSession, 0, len(matches))
	for _, m := range matches {
		sess, ok := byId[m.SourceId]
		if !ok {
			continue
		}
		out = append(out, scoredSession{session: sess, score: m.Score})
	}
	return out, nil
}

func (s *synthesisService) buildSnapshots(ctx context.Context, uow unitofwork.UnitOfWork, sessions []scoredSession) ([]synthesis.Snapshot, error) {
	ids := make([]uuid.UUID, 0, len(sessions))
	for _, ss := range sessions {
		ids = append(ids, ss.session.Id)
	}
	metas, err := uow.SessionMetadataRepository().FindBySessionIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	metaById := make(map[uuid.UUID]*entity.SessionMetadata, len(metas))
	for _, m := range metas {
		metaById[m.SessionId] = m
	}

	snapshots := make([]synthesis.Snapshot, 0, len(sessions))
	for _, ss := range sessions {
		messages, err := uow.MessageRepository().FindBySessionId(ctx, ss.session.Id)
		if err != nil {
			return nil, err
		}
		exchanges := make([]synthesis.Exchange, 0, len(messages))
		for _, msg := range messages {
			exchanges = append(exchanges, synthesis.Exchange{Role: msg.Role, Content: msg.Content})
		}

		snap := synthesis.Snapshot{
			SessionId:    ss.session.Id,
			Title:        ss.session.Title,
			Score:        ss.score,
			KeyExchanges: synthesis.BuildKeyExchanges(exchanges),
			CreatedAt:    ss.session.CreatedAt,
		}
		if meta, ok := metaById[ss.session.Id]; ok {
			snap.Orientation = meta.OrientationBlurb
			snap.Unresolved = meta.UnresolvedEdge
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
