package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileOwnedBy restricts files to those uploaded by the given user.
type FileOwnedBy struct {
	OwnerID uuid.UUID
}

func (s FileOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("files.owner_id = ?", s.OwnerID)
}

// CandidateOwnedBy restricts candidates to those extracted from the user's files.
type CandidateOwnedBy struct {
	UserID uuid.UUID
}

func (s CandidateOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN knowledge_base_documents kbd ON kbd.id = candidates.knowledge_base_document_id AND kbd.deleted_at IS NULL").
		Joins("JOIN files f ON f.id = kbd.file_id AND f.deleted_at IS NULL").
		Where("f.owner_id = ?", s.UserID)
}

// DocumentOwnedBy restricts knowledge base documents to the user's files.
type DocumentOwnedBy struct {
	UserID uuid.UUID
}

func (s DocumentOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN files f ON f.id = knowledge_base_documents.file_id AND f.deleted_at IS NULL").
		Where("f.owner_id = ?", s.UserID)
}

type ByKnowledgeBaseDocumentID struct {
	ID uuid.UUID
}

func (s ByKnowledgeBaseDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_base_document_id = ?", s.ID)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
