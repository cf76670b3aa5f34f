package contract

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *entity.Candidate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error)
}
