package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewStampsTime(t *testing.T) {
	before := time.Now()
	e := New("task.completed", map[string]interface{}{"status": "completed"})

	assert.Equal(t, "task.completed", e.EventType())
	assert.Equal(t, "completed", e.Payload()["status"])
	assert.False(t, e.Timestamp().Before(before))
}

func TestUserID(t *testing.T) {
	id := uuid.New()

	got, ok := UserID(New("task.failed", map[string]interface{}{KeyUserID: id.String()}))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	for name, data := range map[string]map[string]interface{}{
		"missing":   {},
		"malformed": {KeyUserID: "nope"},
		"not text":  {KeyUserID: 42},
		"nil map":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := UserID(BaseEvent{Type: "task.failed", Data: data})
			assert.False(t, ok)
		})
	}
}
