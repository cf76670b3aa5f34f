package entity

import (
	"time"

	"github.com/google/uuid"
)

type CandidateExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type Candidate struct {
	Id                      uuid.UUID
	KnowledgeBaseDocumentId uuid.UUID
	Email                   string
	Name                    string
	Contact                 *string
	YearsOfExperience       float64
	Skills                  []string
	Certifications          []string
	Experiences             []CandidateExperience
	CreatedAt               time.Time
	UpdatedAt               *time.Time
}
