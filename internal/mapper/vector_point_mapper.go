package mapper

import (
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"
	"ai-recruiter-be/pkg/embedding"

	"github.com/pgvector/pgvector-go"
)

type VectorPointMapper struct{}

func NewVectorPointMapper() *VectorPointMapper {
	return &VectorPointMapper{}
}

func (m *VectorPointMapper) ResumePointToModel(p *entity.ResumePoint) *model.ResumePoint {
	return &model.ResumePoint{
		Id:                      p.Id,
		Collection:              p.Collection,
		FileId:                  p.FileId,
		KnowledgeBaseDocumentId: p.KnowledgeBaseDocumentId,
		ChunkIndex:              p.ChunkIndex,
		Text:                    p.Text,
		Embedding:               pgvector.NewVector(p.Embedding),
		CreatedAt:               p.CreatedAt,
	}
}

func (m *VectorPointMapper) CandidatePointToModel(p *entity.CandidatePoint) *model.CandidatePoint {
	return &model.CandidatePoint{
		Id:          p.Id,
		Collection:  p.Collection,
		CandidateId: p.CandidateId,
		Text:        p.Text,
		Embedding:   pgvector.NewVector(p.Embedding),
		Lexical:     pgvector.NewSparseVectorFromMap(p.Lexical, embedding.SparseDimensions),
		CreatedAt:   p.CreatedAt,
	}
}

func (m *VectorPointMapper) CollectionToEntity(c *model.VectorCollection) *entity.VectorCollection {
	if c == nil {
		return nil
	}
	return &entity.VectorCollection{
		Name:       c.Name,
		OwnerId:    c.OwnerId,
		Kind:       entity.CollectionKind(c.Kind),
		Dimensions: c.Dimensions,
		CreatedAt:  c.CreatedAt,
	}
}
