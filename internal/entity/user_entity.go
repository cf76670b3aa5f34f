package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID
	Email     string
	Username  string
	FirstName string
	LastName  string

	// Vector collections holding this user's resume chunks and candidate profiles.
	// Empty until the first document is indexed.
	ResumeCollection    string
	CandidateCollection string

	CreatedAt time.Time
	UpdatedAt *time.Time
}
