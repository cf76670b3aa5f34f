package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeBaseDocument struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Status    string         `gorm:"type:varchar(32);not null;default:'pending'"`
	Content   string         `gorm:"type:text"`
	TaskId    *string        `gorm:"type:varchar(64);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeBaseDocument) TableName() string {
	return "knowledge_base_documents"
}
