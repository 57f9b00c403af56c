package implementation

import (
	"context"
	"errors"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/mapper"
	"inquiry-be/internal/model"
	"inquiry-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionMetadataRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MetadataMapper
}

func NewSessionMetadataRepository(db *gorm.DB) contract.SessionMetadataRepository {
	return &SessionMetadataRepositoryImpl{
		db:     db,
		mapper: mapper.NewMetadataMapper(),
	}
}

func (r *SessionMetadataRepositoryImpl) Upsert(ctx context.Context, metadata *entity.SessionMetadata) error {
	m := r.mapper.ToModel(metadata)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"orientation_blurb", "unresolved_edge", "last_pivot", "generated_at"}),
		}).
		Create(m).Error
}

func (r *SessionMetadataRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionMetadata, error) {
	var m model.SessionMetadata
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionMetadataRepositoryImpl) FindBySessionIds(ctx context.Context, sessionIds []uuid.UUID) ([]*entity.SessionMetadata, error) {
	var models []*model.SessionMetadata
	err := r.db.WithContext(ctx).Where("session_id IN ?", sessionIds).Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.SessionMetadata, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
