package mapper

import (
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"

	"gorm.io/datatypes"
)

type CandidateMapper struct{}

func NewCandidateMapper() *CandidateMapper {
	return &CandidateMapper{}
}

func (m *CandidateMapper) ToEntity(c *model.Candidate) *entity.Candidate {
	if c == nil {
		return nil
	}
	return &entity.Candidate{
		Id:                      c.Id,
		KnowledgeBaseDocumentId: c.KnowledgeBaseDocumentId,
		Email:                   c.Email,
		Name:                    c.Name,
		Contact:                 c.Contact,
		YearsOfExperience:       c.YearsOfExperience,
		Skills:                  []string(c.Skills),
		Certifications:          []string(c.Certifications),
		Experiences:             []entity.CandidateExperience(c.Experiences),
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               timePtr(c.UpdatedAt),
	}
}

func (m *CandidateMapper) ToModel(c *entity.Candidate) *model.Candidate {
	if c == nil {
		return nil
	}
	return &model.Candidate{
		Id:                      c.Id,
		KnowledgeBaseDocumentId: c.KnowledgeBaseDocumentId,
		Email:                   c.Email,
		Name:                    c.Name,
		Contact:                 c.Contact,
		YearsOfExperience:       c.YearsOfExperience,
		Skills:                  datatypes.NewJSONSlice(c.Skills),
		Certifications:          datatypes.NewJSONSlice(c.Certifications),
		Experiences:             datatypes.NewJSONSlice(c.Experiences),
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               timeOrZero(c.UpdatedAt),
	}
}

func (m *CandidateMapper) ToEntities(candidates []*model.Candidate) []*entity.Candidate {
	entities := make([]*entity.Candidate, len(candidates))
	for i, c := range candidates {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
