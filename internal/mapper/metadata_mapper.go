package mapper

import (
	"inquiry-be/internal/entity"
	"inquiry-be/internal/model"
)

type MetadataMapper struct{}

func NewMetadataMapper() *MetadataMapper {
	return &MetadataMapper{}
}

func (m *MetadataMapper) ToEntity(md *model.SessionMetadata) *entity.SessionMetadata {
	if md == nil {
		return nil
	}
	return &entity.SessionMetadata{
		SessionId:        md.SessionId,
		OrientationBlurb: md.OrientationBlurb,
		UnresolvedEdge:   md.UnresolvedEdge,
		LastPivot:        md.LastPivot,
		GeneratedAt:      md.GeneratedAt,
	}
}

func (m *MetadataMapper) ToModel(md *entity.SessionMetadata) *model.SessionMetadata {
	if md == nil {
		return nil
	}
	return &model.SessionMetadata{
		SessionId:        md.SessionId,
		OrientationBlurb: md.OrientationBlurb,
		UnresolvedEdge:   md.UnresolvedEdge,
		LastPivot:        md.LastPivot,
		GeneratedAt:      md.GeneratedAt,
	}
}
