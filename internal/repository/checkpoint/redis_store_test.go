package checkpoint

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStore_RoundTrip(t *testing.T) {
	rdb := redisClient(t)
	s := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()
	key := agent.CheckpointKey(uuid.NewString(), "test")
	t.Cleanup(func() { _ = rdb.Del(ctx, keyPrefix+key).Err() })

	missing, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Save(ctx, key, agent.State{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "find a Go developer"}},
		CandidateID: "c-9",
	}))

	got, err := s.Load(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "find a Go developer", got.LastHumanMessage())
	assert.Equal(t, "c-9", got.CandidateID)
}
