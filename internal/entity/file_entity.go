package entity

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id               uuid.UUID
	OwnerId          uuid.UUID
	Filename         string
	OriginalFilename string
	ContentType      string
	ContentLength    int64
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
