package entity

import (
	"time"

	"github.com/google/uuid"
)

type CollectionKind string

const (
	CollectionKindResume    CollectionKind = "resume"
	CollectionKindCandidate CollectionKind = "candidate"
)

type VectorCollection struct {
	Name       string
	OwnerId    uuid.UUID
	Kind       CollectionKind
	Dimensions int
	CreatedAt  time.Time
}

// ResumePoint is one embedded chunk of a resume document.
type ResumePoint struct {
	Id                      uuid.UUID
	Collection              string
	FileId                  uuid.UUID
	KnowledgeBaseDocumentId uuid.UUID
	ChunkIndex              int
	Text                    string
	Embedding               []float32
	CreatedAt               time.Time
}

// CandidatePoint is a candidate profile in two spaces: a dense embedding used
// for prefetch and a lexical sparse vector used for the second stage.
type CandidatePoint struct {
	Id          uuid.UUID
	Collection  string
	CandidateId uuid.UUID
	Text        string
	Embedding   []float32
	Lexical     map[int32]float32
	CreatedAt   time.Time
}
