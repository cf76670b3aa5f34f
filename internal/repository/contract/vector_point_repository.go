package contract

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/google/uuid"
)

type VectorCollectionRepository interface {
	// Ensure creates the collection, or records a new non-zero vector size on it.
	Ensure(ctx context.Context, collection *entity.VectorCollection) error
	// FindByName returns nil when the collection does not exist.
	FindByName(ctx context.Context, name string) (*entity.VectorCollection, error)
}

type ResumePointRepository interface {
	vectorstore.Searcher
	ReplaceForDocument(ctx context.Context, collection string, documentID uuid.UUID, points []*entity.ResumePoint) error
}

type CandidatePointRepository interface {
	vectorstore.Searcher
	ReplaceForCandidate(ctx context.Context, collection string, candidateID uuid.UUID, point *entity.CandidatePoint) error
}
