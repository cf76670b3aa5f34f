package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type File struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Filename         string         `gorm:"type:varchar(255);not null"`
	OriginalFilename string         `gorm:"type:varchar(255);not null"`
	ContentType      string         `gorm:"type:varchar(255);not null"`
	ContentLength    int64          `gorm:"not null;default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (File) TableName() string {
	return "files"
}
