package contract

import (
	"context"
	"time"

	"inquiry-be/internal/entity"
	"inquiry-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.InquirySession) error
	Update(ctx context.Context, session *entity.InquirySession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InquirySession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InquirySession, error)

	// FindNeedingMetadata returns sessions quiet for at least the inactivity
	// window whose metadata row is absent or older than their last activity.
	// Imported sessions are excluded permanently.
	FindNeedingMetadata(ctx context.Context, inactivity time.Duration) ([]*entity.InquirySession, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.InquiryMessage) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.InquiryMessage, error)
}
