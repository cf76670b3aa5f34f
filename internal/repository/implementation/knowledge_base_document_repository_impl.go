package implementation

import (
	"context"
	"errors"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/mapper"
	"ai-recruiter-be/internal/model"
	"ai-recruiter-be/internal/repository/contract"
	"ai-recruiter-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeBaseDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeBaseMapper
}

func NewKnowledgeBaseDocumentRepository(db *gorm.DB) contract.KnowledgeBaseDocumentRepository {
	return &KnowledgeBaseDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeBaseMapper(),
	}
}

func (r *KnowledgeBaseDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.KnowledgeBaseDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeBaseDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBaseDocument, error) {
	var m model.KnowledgeBaseDocument
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgeBaseDocument{}).Select("knowledge_base_documents.*"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeBaseDocumentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus, taskID *string) error {
	updates := map[string]interface{}{"status": string(status)}
	if taskID != nil {
		updates["task_id"] = *taskID
	}
	return r.db.WithContext(ctx).
		Model(&model.KnowledgeBaseDocument{}).
		Where("id = ?", id).
		Updates(updates).Error
}
