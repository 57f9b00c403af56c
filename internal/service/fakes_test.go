package service

import (
	"context"
	"time"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/contract"
	"inquiry-be/internal/repository/specification"
	"inquiry-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes for service tests. The session fake evaluates
// the id and project specifications the services pass; everything else
// honors ByID/ByIDs only.

type fakeUow struct {
	sessions   *fakeSessionRepo
	messages   *fakeMessageRepo
	metas      *fakeMetadataRepo
	documents  *fakeDocumentRepo
	chunks     *fakeChunkRepo
	embeddings *fakeEmbeddingRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sessions:   &fakeSessionRepo{},
		messages:   &fakeMessageRepo{bySession: map[uuid.UUID][]*entity.InquiryMessage{}},
		metas:      &fakeMetadataRepo{bySession: map[uuid.UUID]*entity.SessionMetadata{}},
		documents:  &fakeDocumentRepo{},
		chunks:     &fakeChunkRepo{},
		embeddings: &fakeEmbeddingRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) SessionRepository() contract.SessionRepository { return u.sessions }
func (u *fakeUow) MessageRepository() contract.MessageRepository { return u.messages }
func (u *fakeUow) SessionMetadataRepository() contract.SessionMetadataRepository {
	return u.metas
}
func (u *fakeUow) DocumentRepository() contract.DocumentRepository           { return u.documents }
func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository { return u.chunks }
func (u *fakeUow) EmbeddingRepository() contract.EmbeddingRepository         { return u.embeddings }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func idsFromSpecs(specs []specification.Specification) []uuid.UUID {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByIDs:
			return v.IDs
		case specification.ByID:
			return []uuid.UUID{v.ID}
		}
	}
	return nil
}

type fakeSessionRepo struct {
	items   []*entity.InquirySession
	updated []*entity.InquirySession
}

func sessionMatchesSpecs(item *entity.InquirySession, specs []specification.Specification) bool {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			if item.Id != v.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range v.IDs {
				if id == item.Id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ByProjectID:
			if item.ProjectId == nil || *item.ProjectId != v.ProjectID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.InquirySession) error {
	r.items = append(r.items, s)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.InquirySession) error {
	r.updated = append(r.updated, s)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InquirySession, error) {
	for _, item := range r.items {
		if sessionMatchesSpecs(item, specs) {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InquirySession, error) {
	var out []*entity.InquirySession
	for _, item := range r.items {
		if sessionMatchesSpecs(item, specs) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindNeedingMetadata(ctx context.Context, inactivity time.Duration) ([]*entity.InquirySession, error) {
	cutoff := time.Now().Add(-inactivity)
	var out []*entity.InquirySession
	for _, item := range r.items {
		if !item.Imported && item.LastActiveAt.Before(cutoff) {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	bySession map[uuid.UUID][]*entity.InquiryMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *entity.InquiryMessage) error {
	r.bySession[m.SessionId] = append(r.bySession[m.SessionId], m)
	return nil
}

func (r *fakeMessageRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.InquiryMessage, error) {
	return r.bySession[sessionId], nil
}

type fakeMetadataRepo struct {
	bySession map[uuid.UUID]*entity.SessionMetadata
}

func (r *fakeMetadataRepo) Upsert(ctx context.Context, m *entity.SessionMetadata) error {
	r.bySession[m.SessionId] = m
	return nil
}

func (r *fakeMetadataRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionMetadata, error) {
	return r.bySession[sessionId], nil
}

func (r *fakeMetadataRepo) FindBySessionIds(ctx context.Context, sessionIds []uuid.UUID) ([]*entity.SessionMetadata, error) {
	var out []*entity.SessionMetadata
	for _, id := range sessionIds {
		if m, ok := r.bySession[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDocumentRepo struct {
	items []*entity.ContextDocument
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.ContextDocument) error {
	r.items = append(r.items, d)
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	var kept []*entity.ContextDocument
	for _, d := range r.items {
		if d.Id != id {
			kept = append(kept, d)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContextDocument, error) {
	ids := idsFromSpecs(specs)
	for _, d := range r.items {
		if len(ids) == 0 || ids[0] == d.Id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextDocument, error) {
	ids := idsFromSpecs(specs)
	if ids == nil {
		return r.items, nil
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.ContextDocument
	for _, d := range r.items {
		if wanted[d.Id] {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeChunkRepo struct {
	items []*entity.DocumentChunk
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.items = append(r.items, chunks...)
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	var kept []*entity.DocumentChunk
	for _, c := range r.items {
		if c.DocumentId != documentId {
			kept = append(kept, c)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeChunkRepo) FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error) {
	var out []*entity.DocumentChunk
	for _, c := range r.items {
		if c.DocumentId == documentId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.DocumentChunk, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.DocumentChunk
	for _, c := range r.items {
		if wanted[c.Id] {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEmbeddingRepo struct {
	items []*entity.Embedding
}

func (r *fakeEmbeddingRepo) Store(ctx context.Context, e *entity.Embedding) error {
	_ = r.DeleteBySource(ctx, e.SourceType, e.SourceId)
	r.items = append(r.items, e)
	return nil
}

func (r *fakeEmbeddingRepo) FindBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) (*entity.Embedding, error) {
	for _, e := range r.items {
		if e.SourceType == sourceType && e.SourceId == sourceId {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmbeddingRepo) FindAllByType(ctx context.Context, sourceType string) ([]*entity.Embedding, error) {
	var out []*entity.Embedding
	for _, e := range r.items {
		if e.SourceType == sourceType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmbeddingRepo) Exists(ctx context.Context, sourceType string, sourceId uuid.UUID) (bool, error) {
	e, _ := r.FindBySource(ctx, sourceType, sourceId)
	return e != nil, nil
}

func (r *fakeEmbeddingRepo) DeleteBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) error {
	var kept []*entity.Embedding
	for _, e := range r.items {
		if e.SourceType == sourceType && e.SourceId == sourceId {
			continue
		}
		kept = append(kept, e)
	}
	r.items = kept
	return nil
}

func (r *fakeEmbeddingRepo) DeleteBySourceIds(ctx context.Context, sourceType string, sourceIds []uuid.UUID) error {
	for _, id := range sourceIds {
		_ = r.DeleteBySource(ctx, sourceType, id)
	}
	return nil
}
