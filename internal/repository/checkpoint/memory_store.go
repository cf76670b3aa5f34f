package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-recruiter-be/pkg/agent"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps checkpoints in process. States are stored encoded so a
// caller mutating a loaded state never changes the stored one.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	// Purge expired items every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &MemoryStore{
		cache: c,
	}
}

func (s *MemoryStore) Save(_ context.Context, key string, state agent.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	s.cache.Set(key, raw, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (*agent.State, error) {
	x, found := s.cache.Get(key)
	if !found {
		return nil, nil
	}
	var state agent.State
	if err := json.Unmarshal(x.([]byte), &state); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	return &state, nil
}
