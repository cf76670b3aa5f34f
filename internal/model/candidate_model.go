package model

import (
	"time"

	"ai-recruiter-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Candidate struct {
	Id                      uuid.UUID                                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseDocumentId uuid.UUID                                       `gorm:"type:uuid;not null;uniqueIndex"`
	Email                   string                                          `gorm:"type:varchar(255);not null;index"`
	Name                    string                                          `gorm:"type:text;not null"`
	Contact                 *string                                         `gorm:"type:text"`
	YearsOfExperience       float64                                         `gorm:"not null;default:0"`
	Skills                  datatypes.JSONSlice[string]                     `gorm:"type:jsonb"`
	Certifications          datatypes.JSONSlice[string]                     `gorm:"type:jsonb"`
	Experiences             datatypes.JSONSlice[entity.CandidateExperience] `gorm:"type:jsonb"`
	CreatedAt               time.Time                                       `gorm:"autoCreateTime"`
	UpdatedAt               time.Time                                       `gorm:"autoUpdateTime"`
	DeletedAt               gorm.DeletedAt                                  `gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}
