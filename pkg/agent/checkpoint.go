package agent

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// CheckpointStore persists the state committed at the end of each turn.
// Load returns nil and no error when nothing is stored under key.
type CheckpointStore interface {
	Load(ctx context.Context, key string) (*State, error)
	Save(ctx context.Context, key string, s State) error
}

// CheckpointKey scopes a conversation's checkpoint to a graph version.
func CheckpointKey(conversationID, version string) string {
	return conversationID + ":" + version
}

// turnLocks serializes turns per conversation.
type turnLocks struct {
	mu    sync.Mutex
	locks map[string]*turnLock
}

type turnLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newTurnLocks() *turnLocks {
	return &turnLocks{locks: make(map[string]*turnLock)}
}

// acquire blocks until key is free or ctx is done.
func (t *turnLocks) acquire(ctx context.Context, key string) (func(), error) {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &turnLock{sem: semaphore.NewWeighted(1)}
		t.locks[key] = l
	}
	l.refs++
	t.mu.Unlock()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		t.drop(key, l)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.sem.Release(1)
			t.drop(key, l)
		})
	}, nil
}

func (t *turnLocks) drop(key string, l *turnLock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, key)
	}
}
