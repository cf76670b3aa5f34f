package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

type EventType string

const (
	EventConversationID   EventType = "conversationId"
	EventNode             EventType = "node"
	EventReason           EventType = "reason"
	EventMessage          EventType = "message"
	EventCitations        EventType = "citations"
	EventCandidates       EventType = "candidates"
	EventResumeCandidates EventType = "resume_candidates"
	EventError            EventType = "error"
	EventDone             EventType = "done"
)

// Event is one item of a turn's stream. Data is a string for conversationId,
// node, error and done; anything else is encoded as JSON.
type Event struct {
	Type EventType
	Data interface{}
	// Lookahead marks a node event announcing a node that has not run yet.
	Lookahead bool
}

type TextPayload struct {
	Text string `json:"text"`
}

func conversationEvent(id string) Event { return Event{Type: EventConversationID, Data: id} }
func nodeEvent(id NodeID) Event         { return Event{Type: EventNode, Data: string(id)} }
func lookaheadEvent(id NodeID) Event    { return Event{Type: EventNode, Data: string(id), Lookahead: true} }
func errorEvent(err error) Event        { return Event{Type: EventError, Data: err.Error()} }
func doneEvent() Event                  { return Event{Type: EventDone, Data: "end"} }

// Encode returns the event's data line content.
func (e Event) Encode() (string, error) {
	if s, ok := e.Data.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return "", fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	return string(raw), nil
}

// SSE renders the event as a server-sent-events frame. Multi-line data is
// split across data lines.
func (e Event) SSE() ([]byte, error) {
	data, err := e.Encode()
	if err != nil {
		return nil, err
	}
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\n", "\ndata: ")
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", e.Type, data)), nil
}
