package contract

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
}
