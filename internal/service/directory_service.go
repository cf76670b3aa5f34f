package service

import (
	"context"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/repository/specification"
	"ai-recruiter-be/internal/repository/unitofwork"
	"ai-recruiter-be/pkg/agent"

	"github.com/google/uuid"
)

// directoryService resolves agent references against the relational store.
type directoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDirectoryService(uowFactory unitofwork.RepositoryFactory) agent.Directory {
	return &directoryService{uowFactory: uowFactory}
}

func (s *directoryService) GetFilesByIDs(ctx context.Context, ids []uuid.UUID, ownerID uuid.UUID) ([]agent.File, error) {
	if len(ids) == 0 {
		return []agent.File{}, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids, Table: "files"},
		specification.FileOwnedBy{OwnerID: ownerID},
	)
	if err != nil {
		return nil, err
	}

	out := make([]agent.File, 0, len(files))
	for _, f := range files {
		out = append(out, toAgentFile(f))
	}
	return out, nil
}

func (s *directoryService) GetCandidateByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*agent.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidate, err := uow.CandidateRepository().FindOne(ctx,
		specification.ByID{ID: id, Table: "candidates"},
		specification.CandidateOwnedBy{UserID: ownerID},
	)
	if err != nil || candidate == nil {
		return nil, err
	}
	c := toAgentCandidate(candidate)
	return &c, nil
}

func (s *directoryService) GetCandidateByKnowledgeBaseDocumentID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*agent.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidate, err := uow.CandidateRepository().FindOne(ctx,
		specification.Filter("candidates.knowledge_base_document_id", id),
		specification.CandidateOwnedBy{UserID: ownerID},
	)
	if err != nil || candidate == nil {
		return nil, err
	}
	c := toAgentCandidate(candidate)
	return &c, nil
}

func (s *directoryService) GetKnowledgeBaseDocument(ctx context.Context, id uuid.UUID) (*agent.KnowledgeBaseDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeBaseDocumentRepository().FindOne(ctx, specification.ByID{ID: id, Table: "knowledge_base_documents"})
	if err != nil || doc == nil {
		return nil, err
	}
	return &agent.KnowledgeBaseDocument{
		ID:        doc.Id,
		FileID:    doc.FileId,
		Status:    string(doc.Status),
		CreatedAt: doc.CreatedAt,
	}, nil
}

func toAgentFile(f *entity.File) agent.File {
	return agent.File{
		ID:               f.Id,
		OwnerID:          f.OwnerId,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		ContentType:      f.ContentType,
		ContentLength:    f.ContentLength,
		CreatedAt:        f.CreatedAt,
	}
}

func toAgentCandidate(c *entity.Candidate) agent.Candidate {
	out := agent.Candidate{
		ID:                      c.Id,
		KnowledgeBaseDocumentID: c.KnowledgeBaseDocumentId,
		Email:                   c.Email,
		Name:                    c.Name,
		YearsOfExperience:       c.YearsOfExperience,
		Skills:                  nonNilStrings(c.Skills),
		Certifications:          nonNilStrings(c.Certifications),
		Experiences:             make([]agent.Experience, 0, len(c.Experiences)),
	}
	if c.Contact != nil {
		out.Contact = *c.Contact
	}
	for _, e := range c.Experiences {
		out.Experiences = append(out.Experiences, agent.Experience{
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
