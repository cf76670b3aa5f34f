// Package events is the envelope shared by everything published on the event
// bus: agent turn completions and indexing task transitions.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one bus message. EventType doubles as the subject suffix, e.g.
// "task.completed" or "agent.turn_completed".
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Payload key naming the user an event belongs to.
const KeyUserID = "user_id"

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New stamps an event with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UserID reads the owning user from the payload.
func UserID(e Event) (uuid.UUID, bool) {
	raw, _ := e.Payload()[KeyUserID].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
