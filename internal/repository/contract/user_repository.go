package contract

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	UpdateCollections(ctx context.Context, id uuid.UUID, resumeCollection, candidateCollection string) error
}
