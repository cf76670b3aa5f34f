package react

import (
	"time"

	"ai-recruiter-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// Memory keeps each thread's sub-agent transcript for a limited time.
type Memory struct {
	cache *cache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: cache.New(ttl, 10*time.Minute)}
}

func (m *Memory) History(threadID string) []llm.Message {
	if x, found := m.cache.Get(threadID); found {
		msgs := x.([]llm.Message)
		return append([]llm.Message(nil), msgs...)
	}
	return nil
}

func (m *Memory) Save(threadID string, history []llm.Message) {
	m.cache.Set(threadID, append([]llm.Message(nil), history...), cache.DefaultExpiration)
}
