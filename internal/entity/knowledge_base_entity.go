package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusExtracted  DocumentStatus = "extracted"
	DocumentStatusIndexed    DocumentStatus = "indexed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

type KnowledgeBaseDocument struct {
	Id        uuid.UUID
	FileId    uuid.UUID
	Status    DocumentStatus
	Content   string
	TaskId    *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Ready reports whether text extraction finished and the document can be indexed.
func (d *KnowledgeBaseDocument) Ready() bool {
	return d.Status == DocumentStatusExtracted || d.Status == DocumentStatusIndexed
}
