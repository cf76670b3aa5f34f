package agent

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// File is a citation: a source file surfaced to the user as evidence.
type File struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	ContentLength    int64     `json:"content_length"`
	CreatedAt        time.Time `json:"created_at"`
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type Candidate struct {
	ID                      uuid.UUID    `json:"id"`
	KnowledgeBaseDocumentID uuid.UUID    `json:"knowledge_base_document_id"`
	Email                   string       `json:"email"`
	Name                    string       `json:"name"`
	Contact                 string       `json:"contact,omitempty"`
	YearsOfExperience       float64      `json:"years_of_experience"`
	Skills                  []string     `json:"skills"`
	Certifications          []string     `json:"certifications"`
	Experiences             []Experience `json:"experiences"`
}

type KnowledgeBaseDocument struct {
	ID        uuid.UUID `json:"id"`
	FileID    uuid.UUID `json:"file_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoredCandidate carries the best retrieval score seen for the candidate this turn.
type ScoredCandidate struct {
	Candidate
	Score float64 `json:"score"`
}

// ResumeCandidate carries the resume chunks that matched the query, in retrieval order.
type ResumeCandidate struct {
	Candidate
	Chunks                []string               `json:"chunks"`
	KnowledgeBaseDocument *KnowledgeBaseDocument `json:"knowledge_base_document,omitempty"`
}

// User is the acting recruiter.
type User struct {
	ID                  uuid.UUID
	Email               string
	FirstName           string
	ResumeCollection    string
	CandidateCollection string
}

// Directory resolves retrieved references to canonical records. Lookups that
// find nothing return nil and no error. Ownership-scoped lookups never return
// records that belong to another user.
type Directory interface {
	GetFilesByIDs(ctx context.Context, ids []uuid.UUID, ownerID uuid.UUID) ([]File, error)
	GetCandidateByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Candidate, error)
	GetCandidateByKnowledgeBaseDocumentID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Candidate, error)
	GetKnowledgeBaseDocument(ctx context.Context, id uuid.UUID) (*KnowledgeBaseDocument, error)
}
