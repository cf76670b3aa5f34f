package taskstatus

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-recruiter-be/pkg/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_Done(t *testing.T) {
	assert.False(t, Task{Status: StatusPending}.Done())
	assert.False(t, Task{Status: StatusProcessing}.Done())
	assert.True(t, Task{Status: StatusCompleted}.Done())
	assert.True(t, Task{Status: StatusFailed}.Done())
}

func TestRedisStore_PutGet(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	s := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()

	_, err = s.Get(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	task := Task{ID: uuid.New(), OwnerID: uuid.New(), DocumentID: uuid.New(), Status: StatusPending, CreatedAt: time.Now()}
	require.NoError(t, s.Put(ctx, task))

	got, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, task.DocumentID, got.DocumentID)
	assert.False(t, got.UpdatedAt.IsZero())
}
