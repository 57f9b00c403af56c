package service

import (
	"context"
	"testing"
	"time"

	"inquiry-be/internal/constant"
	"inquiry-be/internal/entity"
	"inquiry-be/pkg/metadata"

	"github.com/google/uuid"
)

type recordingLogger struct {
	errors []string
	infos  []string
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.infos = append(l.infos, message)
}
func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {}
func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.errors = append(l.errors, message)
}
func (l *recordingLogger) Sync() error { return nil }

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newSchedulerFixture(llmReply string) (*fakeUow, *recordingLogger, *recordingPublisher, *MetadataScheduler) {
	uow := newFakeUow()
	log := &recordingLogger{}
	pub := &recordingPublisher{}
	gen := metadata.NewGenerator(&stubLLM{reply: llmReply}, discardLogger())
	sched := NewMetadataScheduler(&fakeFactory{uow: uow}, gen, pub, nil, log, time.Hour, time.Minute)
	return uow, log, pub, sched
}

func seedQuietSession(uow *fakeUow, withMessages bool) uuid.UUID {
	id := uuid.New()
	uow.sessions.items = append(uow.sessions.items, &entity.InquirySession{
		Id:           id,
		Title:        "a titled inquiry",
		LastActiveAt: time.Now().Add(-2 * time.Hour),
	})
	if withMessages {
		uow.messages.bySession[id] = []*entity.InquiryMessage{
			{Id: uuid.New(), SessionId: id, Role: constant.MessageRoleUser, Content: "an opening question"},
			{Id: uuid.New(), SessionId: id, Role: constant.MessageRoleModel, Content: "a reply"},
		}
	}
	return id
}

func TestSweepRegeneratesQuietSession(t *testing.T) {
	uow, log, pub, sched := newSchedulerFixture(
		`{"orientation_blurb":"an orientation","unresolved_edge":"an edge","last_pivot":"a pivot"}`)
	id := seedQuietSession(uow, true)

	sched.sweep(context.Background())

	meta := uow.metas.bySession[id]
	if meta == nil {
		t.Fatal("no metadata row written")
	}
	if meta.OrientationBlurb != "an orientation" {
		t.Errorf("orientation = %q", meta.OrientationBlurb)
	}
	if len(pub.payloads) != 1 {
		t.Errorf("published %d embed tasks, want 1", len(pub.payloads))
	}
	if len(log.errors) != 0 {
		t.Errorf("unexpected errors logged: %v", log.errors)
	}
}

func TestSweepSkipsSessionWithoutMessages(t *testing.T) {
	uow, log, pub, sched := newSchedulerFixture(`{"orientation_blurb":"x"}`)
	id := seedQuietSession(uow, false)

	// Quiet but empty sessions are a no-op, not a failure: two sweeps must
	// neither log an error nor publish anything.
	sched.sweep(context.Background())
	sched.sweep(context.Background())

	if uow.metas.bySession[id] != nil {
		t.Error("empty session should not get a metadata row")
	}
	if len(pub.payloads) != 0 {
		t.Errorf("published %d embed tasks, want 0", len(pub.payloads))
	}
	if len(log.errors) != 0 {
		t.Errorf("empty session reported as failure: %v", log.errors)
	}
}

func TestNeedsRegeneration(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	inactivity := time.Hour

	sessionId := uuid.New()
	session := func(lastActive time.Time, imported bool) *entity.InquirySession {
		return &entity.InquirySession{
			Id:           sessionId,
			LastActiveAt: lastActive,
			Imported:     imported,
		}
	}
	meta := func(generatedAt time.Time) *entity.SessionMetadata {
		return &entity.SessionMetadata{
			SessionId:   sessionId,
			GeneratedAt: generatedAt,
		}
	}

	quiet := now.Add(-2 * time.Hour)   // past the inactivity window
	recent := now.Add(-10 * time.Minute)

	tests := []struct {
		name    string
		session *entity.InquirySession
		meta    *entity.SessionMetadata
		want    bool
	}{
		{
			name:    "inactive session without metadata",
			session: session(quiet, false),
			meta:    nil,
			want:    true,
		},
		{
			name:    "inactive session with stale metadata",
			session: session(quiet, false),
			meta:    meta(quiet.Add(-time.Hour)),
			want:    true,
		},
		{
			name:    "recently active session waits out the window",
			session: session(recent, false),
			meta:    nil,
			want:    false,
		},
		{
			name:    "metadata newer than last activity is fresh",
			session: session(quiet, false),
			meta:    meta(quiet.Add(time.Minute)),
			want:    false,
		},
		{
			name:    "exactly at the window boundary qualifies",
			session: session(now.Add(-inactivity), false),
			meta:    nil,
			want:    true,
		},
		{
			name:    "imported session never qualifies",
			session: session(quiet, true),
			meta:    nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := needsRegeneration(tt.session, tt.meta, now, inactivity)
			if got != tt.want {
				t.Errorf("needsRegeneration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildTranscript(t *testing.T) {
	messages := []*entity.InquiryMessage{
		{Role: "user", Content: "why do we dream?"},
		{Role: "model", Content: "several theories exist"},
	}
	got := buildTranscript(messages)
	want := "[user] why do we dream?\n[model] several theories exist\n"
	if got != want {
		t.Errorf("buildTranscript() = %q, want %q", got, want)
	}
}
