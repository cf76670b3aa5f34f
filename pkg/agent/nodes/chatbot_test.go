package nodes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbot_PromptsWithProfilesFirst(t *testing.T) {
	model := &fakeModel{reply: llm.Message{Role: llm.RoleAssistant, Content: "Pick Ada", Reasoning: "she knows Go"}}
	n := &Chatbot{Model: model, Logger: nopLogger{}}

	s := askState("who knows Go?")
	s.Candidates = []agent.ScoredCandidate{{Candidate: agent.Candidate{
		Name:              "Ada",
		Email:             "ada@example.com",
		YearsOfExperience: 7.5,
		Skills:            []string{"Go", "SQL"},
		Experiences:       []agent.Experience{{Company: "Acme", Title: "Engineer", StartDate: "2019-01"}},
	}, Score: 0.9}}
	s.ResumeCandidates = []agent.ResumeCandidate{{Candidate: agent.Candidate{Name: "Bob"}, Chunks: []string{"Built a Go service"}}}

	u, err := n.Handle(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, u.Messages, 1)
	assert.Equal(t, "Pick Ada", u.Messages[0].Content)
	assert.Equal(t, "she knows Go", u.Messages[0].Reasoning)
	assert.Equal(t, 1, u.LLMCalls)

	sent := model.history[0]
	require.Len(t, sent, 4)
	system := sent[0].Content
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.Contains(t, system, "Years of experience: 7.5")
	assert.Contains(t, system, "Skills: Go, SQL")
	assert.Contains(t, system, "- Engineer at Acme (2019-01 - Present)")
	assert.Contains(t, system, "Retrieved Text for Candidate: Bob\nBuilt a Go service")
	assert.Less(t, strings.Index(system, "Name: Ada"), strings.Index(system, "Retrieved Text for Candidate: Bob"))
}

func TestChatbot_ModelFailure(t *testing.T) {
	n := &Chatbot{Model: &fakeModel{err: errors.New("timeout")}, Logger: nopLogger{}}

	_, err := n.Handle(context.Background(), askState("q"))
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
}
