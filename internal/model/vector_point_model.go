package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type VectorCollection struct {
	Name       string    `gorm:"type:varchar(255);primaryKey"`
	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind       string    `gorm:"type:varchar(32);not null"`
	Dimensions int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VectorCollection) TableName() string {
	return "vector_collections"
}

type ResumePoint struct {
	Id                      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection              string          `gorm:"type:varchar(255);not null;index"`
	FileId                  uuid.UUID       `gorm:"type:uuid;not null;index"`
	KnowledgeBaseDocumentId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex              int             `gorm:"default:0"`
	Text                    string          `gorm:"type:text"`
	Embedding               pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt               time.Time       `gorm:"autoCreateTime"`
}

func (ResumePoint) TableName() string {
	return "resume_points"
}

type CandidatePoint struct {
	Id          uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection  string                `gorm:"type:varchar(255);not null;index"`
	CandidateId uuid.UUID             `gorm:"type:uuid;not null;index"`
	Text        string                `gorm:"type:text"`
	Embedding   pgvector.Vector       `gorm:"type:vector(768)"`
	Lexical     pgvector.SparseVector `gorm:"type:sparsevec(262144)"`
	CreatedAt   time.Time             `gorm:"autoCreateTime"`
}

func (CandidatePoint) TableName() string {
	return "candidate_points"
}
