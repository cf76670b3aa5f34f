package implementation

import (
	"context"
	"errors"

	"ai-recruiter-be/internal/entity"
	"ai-recruiter-be/internal/mapper"
	"ai-recruiter-be/internal/model"
	"ai-recruiter-be/internal/repository/contract"
	"ai-recruiter-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CandidateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateMapper
}

func NewCandidateRepository(db *gorm.DB) contract.CandidateRepository {
	return &CandidateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateMapper(),
	}
}

func (r *CandidateRepositoryImpl) Create(ctx context.Context, candidate *entity.Candidate) error {
	m := r.mapper.ToModel(candidate)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*candidate = *r.mapper.ToEntity(m)
	return nil
}

func (r *CandidateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error) {
	var m model.Candidate
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Candidate{}).Select("candidates.*"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CandidateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error) {
	var models []*model.Candidate
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Candidate{}).Select("candidates.*"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
