package service

import (
	"context"
	"time"

	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/internal/repository/taskstatus"
	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/events"
)

// TaskEventPrefix namespaces task transitions on the event bus (events.task.<status>).
const TaskEventPrefix = "task."

// TaskTracker records indexing task transitions and announces each one.
type TaskTracker struct {
	store     taskstatus.Store
	publisher agent.EventPublisher
	logger    logger.ILogger
}

// NewTaskTracker builds a tracker. publisher may be nil.
func NewTaskTracker(store taskstatus.Store, publisher agent.EventPublisher, log logger.ILogger) *TaskTracker {
	return &TaskTracker{store: store, publisher: publisher, logger: log}
}

// Transition moves task to status and publishes the change. Publish failures
// are logged only.
func (t *TaskTracker) Transition(ctx context.Context, task *taskstatus.Task, status taskstatus.Status, reason string) error {
	task.Status = status
	task.Error = reason
	if task.Done() {
		now := time.Now()
		task.FinishedAt = &now
	}
	if err := t.store.Put(ctx, *task); err != nil {
		return err
	}

	if t.publisher == nil {
		return nil
	}
	evt := events.New(TaskEventPrefix+string(status), map[string]interface{}{
		"task_id":        task.ID.String(),
		events.KeyUserID: task.OwnerID.String(),
		"document_id":    task.DocumentID.String(),
		"status":         string(status),
		"error":          reason,
	})
	if err := t.publisher.Publish(ctx, evt); err != nil {
		t.logger.Warn("TaskTracker", "Failed to publish task event", map[string]interface{}{
			"task_id": task.ID.String(),
			"status":  string(status),
			"error":   err.Error(),
		})
	}
	return nil
}
