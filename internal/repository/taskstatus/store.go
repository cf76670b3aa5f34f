// Package taskstatus tracks background indexing tasks in Redis.
package taskstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-recruiter-be/pkg/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

const keyPrefix = "task:"

type Task struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	DocumentID uuid.UUID  `json:"document_id"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (t Task) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

type Store interface {
	Put(ctx context.Context, task Task) error
	Get(ctx context.Context, id uuid.UUID) (*Task, error)
}

type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, task Task) error {
	task.UpdatedAt = time.Now()
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+task.ID.String(), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NotFound("task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load task %s: %w", id, err)
	}
	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
