package unitofwork

import (
	"context"

	"ai-recruiter-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	KnowledgeBaseDocumentRepository() contract.KnowledgeBaseDocumentRepository
	CandidateRepository() contract.CandidateRepository

	VectorCollectionRepository() contract.VectorCollectionRepository
	ResumePointRepository() contract.ResumePointRepository
	CandidatePointRepository() contract.CandidatePointRepository
}
