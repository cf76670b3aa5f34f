package unitofwork

import (
	"context"
	"fmt"

	"ai-recruiter-be/internal/repository/contract"
	"ai-recruiter-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FileRepository() contract.FileRepository {
	return implementation.NewFileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KnowledgeBaseDocumentRepository() contract.KnowledgeBaseDocumentRepository {
	return implementation.NewKnowledgeBaseDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CandidateRepository() contract.CandidateRepository {
	return implementation.NewCandidateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VectorCollectionRepository() contract.VectorCollectionRepository {
	return implementation.NewVectorCollectionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ResumePointRepository() contract.ResumePointRepository {
	return implementation.NewResumePointRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CandidatePointRepository() contract.CandidatePointRepository {
	return implementation.NewCandidatePointRepository(u.getDB())
}
