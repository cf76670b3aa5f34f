package contract

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeBaseDocumentRepository interface {
	Create(ctx context.Context, doc *entity.KnowledgeBaseDocument) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBaseDocument, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus, taskID *string) error
}
