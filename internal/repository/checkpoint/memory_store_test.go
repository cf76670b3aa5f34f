package checkpoint

import (
	"context"
	"testing"
	"time"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	missing, err := s.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	state := agent.State{
		Messages:              []llm.Message{{Role: llm.RoleUser, Content: "hi"}, {Role: llm.RoleAssistant, Content: "hello", Reasoning: "greet"}},
		LLMCalls:              1,
		ResumeRetrievedPoints: []vectorstore.Point{{ID: "p", Score: 0.5, Payload: map[string]interface{}{"text": "chunk"}}},
		CandidateID:           "c-1",
	}
	require.NoError(t, s.Save(ctx, "conv:v1", state))

	got, err := s.Load(ctx, "conv:v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.Messages, got.Messages)
	assert.Equal(t, "c-1", got.CandidateID)
	assert.Equal(t, "chunk", got.ResumeRetrievedPoints[0].Text())

	got.Messages[0].Content = "mutated"
	again, err := s.Load(ctx, "conv:v1")
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Messages[0].Content)
}

func TestMemoryStore_KeysAreIsolated(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, agent.CheckpointKey("conv", "v1"), agent.State{CandidateID: "a"}))

	other, err := s.Load(ctx, agent.CheckpointKey("conv", "v2"))
	require.NoError(t, err)
	assert.Nil(t, other, "a new graph version starts fresh")

	same, err := s.Load(ctx, agent.CheckpointKey("conv", "v1"))
	require.NoError(t, err)
	require.NotNil(t, same)
	assert.Equal(t, "a", same.CandidateID)
}
