package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/dto"
	"inquiry-be/internal/entity"
	"inquiry-be/internal/pkg/logger"
	"inquiry-be/internal/repository/unitofwork"
	"inquiry-be/pkg/events"
	"inquiry-be/pkg/metadata"
	pktNats "inquiry-be/pkg/nats"
)

// MetadataScheduler regenerates session summaries in the background. A
// session qualifies once it has been quiet for the inactivity window and its
// metadata is absent or predates its last activity. Sessions are processed
// sequentially; one failure is logged and skipped, never aborting the tick.
type MetadataScheduler struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      *metadata.Generator
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger

	inactivity time.Duration
	interval   time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewMetadataScheduler(
	uowFactory unitofwork.RepositoryFactory,
	generator *metadata.Generator,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	inactivity time.Duration,
	interval time.Duration,
) *MetadataScheduler {
	return &MetadataScheduler{
		uowFactory:     uowFactory,
		generator:      generator,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
		inactivity:     inactivity,
		interval:       interval,
	}
}

// Start launches the background loop. The first sweep runs immediately, then
// one per interval. Calling Start on a running scheduler is a no-op.
func (s *MetadataScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *MetadataScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.running = false
}

func (s *MetadataScheduler) sweep(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindNeedingMetadata(ctx, s.inactivity)
	if err != nil {
		s.logger.Error("scheduler", "Failed to list sessions needing metadata", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(sessions) == 0 {
		return
	}

	s.logger.Info("scheduler", "Regenerating stale session metadata", map[string]interface{}{
		"count": len(sessions),
	})

	now := time.Now()
	for _, session := range sessions {
		if ctx.Err() != nil {
			return
		}

		// The query already filtered, but activity may have resumed between
		// the query and this session's turn in the sweep.
		meta, err := uow.SessionMetadataRepository().FindBySessionId(ctx, session.Id)
		if err != nil {
			s.reportFailure(ctx, session, err)
			continue
		}
		if !needsRegeneration(session, meta, now, s.inactivity) {
			continue
		}

		regenerated, err := s.regenerate(ctx, uow, session)
		if err != nil {
			s.reportFailure(ctx, session, err)
			continue
		}
		if !regenerated {
			continue
		}

		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewMetadataRegenerated(session.Id)); err != nil {
				s.logger.Warn("scheduler", "Failed to publish METADATA_REGENERATED event", map[string]interface{}{
					"session_id": session.Id.String(),
					"error":      err.Error(),
				})
			}
		}
	}
}

// regenerate rebuilds one session's summary. The bool reports whether a
// summary was actually written: a session with no transcript yet is skipped,
// not failed, so it does not raise an event on every tick.
func (s *MetadataScheduler) regenerate(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.InquirySession) (bool, error) {
	messages, err := uow.MessageRepository().FindBySessionId(ctx, session.Id)
	if err != nil {
		return false, err
	}
	if len(messages) == 0 {
		s.logger.Info("scheduler", "Session has no messages yet, skipping", map[string]interface{}{
			"session_id": session.Id.String(),
		})
		return false, nil
	}

	fields, err := s.generator.Generate(ctx, buildTranscript(messages))
	if err != nil {
		return false, err
	}

	if err := uow.SessionMetadataRepository().Upsert(ctx, &entity.SessionMetadata{
		SessionId:        session.Id,
		OrientationBlurb: fields.OrientationBlurb,
		UnresolvedEdge:   fields.UnresolvedEdge,
		LastPivot:        fields.LastPivot,
		GeneratedAt:      time.Now(),
	}); err != nil {
		return false, err
	}

	// Untitled sessions pick up a derived title on their first regeneration.
	if strings.TrimSpace(session.Title) == "" {
		if title, err := s.generator.GenerateTitle(ctx, openingContent(messages)); err == nil {
			session.Title = title
			if err := uow.SessionRepository().Update(ctx, session); err != nil {
				s.logger.Warn("scheduler", "Failed to persist generated title", map[string]interface{}{
					"session_id": session.Id.String(),
					"error":      err.Error(),
				})
			}
		}
	}

	// Queue the summary embedding, unless one already exists for the
	// session: partial-failure retries must not burn provider calls
	// re-embedding a summary that already made it to the store.
	exists, err := uow.EmbeddingRepository().Exists(ctx, constant.SourceTypeSessionSummary, session.Id)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	payload, err := json.Marshal(dto.PublishEmbedTaskMessage{
		SourceType: constant.SourceTypeSessionSummary,
		SourceId:   session.Id,
	})
	if err != nil {
		return false, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MetadataScheduler) reportFailure(ctx context.Context, session *entity.InquirySession, cause error) {
	s.logger.Error("scheduler", "Metadata regeneration failed", map[string]interface{}{
		"session_id": session.Id.String(),
		"error":      cause.Error(),
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewMetadataFailed(session.Id, cause.Error())); err != nil {
			s.logger.Warn("scheduler", "Failed to publish METADATA_FAILED event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}
}

// needsRegeneration decides whether a session's summary must be rebuilt now.
// Imported sessions never qualify; active sessions wait out the inactivity
// window; a summary generated after the session's last activity is fresh.
func needsRegeneration(session *entity.InquirySession, meta *entity.SessionMetadata, now time.Time, inactivity time.Duration) bool {
	if session.Imported {
		return false
	}
	if now.Sub(session.LastActiveAt) < inactivity {
		return false
	}
	if meta == nil {
		return true
	}
	return meta.StaleFor(session.LastActiveAt)
}

// openingContent picks the text a title is derived from: the first user
// message, falling back to whatever opened the session.
func openingContent(messages []*entity.InquiryMessage) string {
	for _, msg := range messages {
		if msg.Role == constant.MessageRoleUser {
			return msg.Content
		}
	}
	return messages[0].Content
}

func buildTranscript(messages []*entity.InquiryMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(fmt.Sprintf("[%s] %s\n", msg.Role, msg.Content))
	}
	return b.String()
}
