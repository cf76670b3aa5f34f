package service

import (
	"context"
	"strings"

	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/pkg/events"
	pktNats "ai-recruiter-be/pkg/nats"

	"github.com/google/uuid"
)

// TaskDelivery pushes real-time updates to a user's open connections.
type TaskDelivery interface {
	Send(userID uuid.UUID, eventType string, data interface{})
}

// TaskNotifier forwards indexing task transitions from the event bus to the
// owning user's websocket connections.
type TaskNotifier struct {
	subscriber *pktNats.Subscriber
	delivery   TaskDelivery
	logger     logger.ILogger
}

func NewTaskNotifier(sub *pktNats.Subscriber, delivery TaskDelivery, log logger.ILogger) *TaskNotifier {
	return &TaskNotifier{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

func (n *TaskNotifier) Start() {
	if err := n.subscriber.Subscribe("events."+TaskEventPrefix+">", "task-notifier", n.HandleEvent); err != nil {
		n.logger.Error("TaskNotifier", "Failed to start task subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	n.logger.Info("TaskNotifier", "Task notifier started", nil)
}

// HandleEvent delivers one task event. Events without a valid user_id are
// dropped rather than redelivered.
func (n *TaskNotifier) HandleEvent(_ context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	userID, ok := events.UserID(event)
	if !ok {
		n.logger.Warn("TaskNotifier", "Task event without user", map[string]interface{}{"type": typeCode})
		return nil
	}

	n.delivery.Send(userID, typeCode, event.Payload())
	return nil
}
