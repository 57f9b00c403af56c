package implementation

import (
	"context"
	"errors"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/mapper"
	"inquiry-be/internal/model"
	"inquiry-be/internal/repository/contract"
	"inquiry-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

// Store is an upsert: delete-then-insert in one transaction rather than an
// UPDATE, so a partial write can never leave a row mixing the old vector
// with the new model identifier.
func (r *EmbeddingRepositoryImpl) Store(ctx context.Context, embedding *entity.Embedding) error {
	m, err := r.mapper.ToModel(embedding)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("source_type = ? AND source_id = ?", m.SourceType, m.SourceId).
			Delete(&model.Embedding{}).Error; err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		*embedding = *r.mapper.ToEntity(m)
		return nil
	})
}

func (r *EmbeddingRepositoryImpl) FindBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) (*entity.Embedding, error) {
	var m model.Embedding
	err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmbeddingRepositoryImpl) FindAllByType(ctx context.Context, sourceType string) ([]*entity.Embedding, error) {
	var models []*model.Embedding
	query := specification.BySourceType{SourceType: sourceType}.Apply(r.db.WithContext(ctx))
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) Exists(ctx context.Context, sourceType string, sourceId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Embedding{}).
		Where("source_type = ? AND source_id = ?", sourceType, sourceId).
		Count(&count).Error
	return count > 0, err
}

func (r *EmbeddingRepositoryImpl) DeleteBySource(ctx context.Context, sourceType string, sourceId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceId).
		Delete(&model.Embedding{}).Error
}

func (r *EmbeddingRepositoryImpl) DeleteBySourceIds(ctx context.Context, sourceType string, sourceIds []uuid.UUID) error {
	if len(sourceIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("source_type = ? AND source_id IN ?", sourceType, sourceIds).
		Delete(&model.Embedding{}).Error
}
