package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email               string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username            string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName           string         `gorm:"type:varchar(255)"`
	LastName            string         `gorm:"type:varchar(255)"`
	ResumeCollection    *string        `gorm:"type:varchar(255)"`
	CandidateCollection *string        `gorm:"type:varchar(255)"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
