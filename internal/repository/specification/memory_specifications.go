package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters messages (or metadata) belonging to one session.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByProjectID filters sessions belonging to one project.
type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// NotImported excludes sessions ingested from external archives.
type NotImported struct{}

func (s NotImported) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("imported = false")
}

// LastActiveBefore selects sessions quiet since the cutoff.
type LastActiveBefore struct {
	Cutoff time.Time
}

func (s LastActiveBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_active_at < ?", s.Cutoff)
}

// ByDocumentID filters chunks belonging to one document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// BySourceType filters embeddings of one source type.
type BySourceType struct {
	SourceType string
}

func (s BySourceType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_type = ?", s.SourceType)
}
