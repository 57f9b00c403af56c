package mapper

import (
	"encoding/json"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/model"

	"gorm.io/datatypes"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

// ToEntity deserializes the JSON vector column. A row whose vector fails to
// parse maps to a nil Values slice; rankers skip it via the dimension check.
func (m *EmbeddingMapper) ToEntity(e *model.Embedding) *entity.Embedding {
	if e == nil {
		return nil
	}

	var values []float32
	if len(e.Vector) > 0 {
		_ = json.Unmarshal(e.Vector, &values)
	}

	return &entity.Embedding{
		Id:              e.Id,
		SourceType:      e.SourceType,
		SourceId:        e.SourceId,
		Values:          values,
		Dimension:       e.Dimension,
		ModelIdentifier: e.ModelIdentifier,
		CreatedAt:       e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.Embedding) (*model.Embedding, error) {
	if e == nil {
		return nil, nil
	}

	vector, err := json.Marshal(e.Values)
	if err != nil {
		return nil, err
	}

	return &model.Embedding{
		Id:              e.Id,
		SourceType:      e.SourceType,
		SourceId:        e.SourceId,
		Vector:          datatypes.JSON(vector),
		Dimension:       e.Dimension,
		ModelIdentifier: e.ModelIdentifier,
		CreatedAt:       e.CreatedAt,
	}, nil
}

func (m *EmbeddingMapper) ToEntities(models []*model.Embedding) []*entity.Embedding {
	entities := make([]*entity.Embedding, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
