package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChatRequest is one turn. candidate_id: omitted keeps the conversation's
// selection, "" clears it.
type ChatRequest struct {
	Message        string  `json:"message" validate:"required"`
	ConversationID string  `json:"conversation_id,omitempty"`
	CandidateID    *string `json:"candidate_id,omitempty"`
}

// ChatFrame is one stream event on the websocket transport.
type ChatFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type IndexDocumentResponse struct {
	TaskID uuid.UUID `json:"task_id"`
}

type TaskStatusResponse struct {
	ID         uuid.UUID  `json:"id"`
	DocumentID uuid.UUID  `json:"document_id"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// PublishIndexDocumentMessage is the job payload on the indexing topic.
type PublishIndexDocumentMessage struct {
	TaskID     uuid.UUID `json:"task_id"`
	DocumentID uuid.UUID `json:"document_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}
