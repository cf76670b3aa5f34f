package mapper

import (
	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/model"
)

type KnowledgeBaseMapper struct{}

func NewKnowledgeBaseMapper() *KnowledgeBaseMapper {
	return &KnowledgeBaseMapper{}
}

func (m *KnowledgeBaseMapper) ToEntity(d *model.KnowledgeBaseDocument) *entity.KnowledgeBaseDocument {
	if d == nil {
		return nil
	}
	return &entity.KnowledgeBaseDocument{
		Id:        d.Id,
		FileId:    d.FileId,
		Status:    entity.DocumentStatus(d.Status),
		Content:   d.Content,
		TaskId:    d.TaskId,
		CreatedAt: d.CreatedAt,
		UpdatedAt: timePtr(d.UpdatedAt),
	}
}

func (m *KnowledgeBaseMapper) ToModel(d *entity.KnowledgeBaseDocument) *model.KnowledgeBaseDocument {
	if d == nil {
		return nil
	}
	return &model.KnowledgeBaseDocument{
		Id:        d.Id,
		FileId:    d.FileId,
		Status:    string(d.Status),
		Content:   d.Content,
		TaskId:    d.TaskId,
		CreatedAt: d.CreatedAt,
		UpdatedAt: timeOrZero(d.UpdatedAt),
	}
}
