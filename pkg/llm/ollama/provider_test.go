package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-recruiter-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatReturnsThinkingAndToolCalls(t *testing.T) {
	var received ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"model":"qwen3","done":true,"message":{"role":"assistant","content":"","thinking":"check slots","tool_calls":[{"function":{"name":"send_email","arguments":{"to":"a@b.c"}}}]}}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "qwen3")
	msg, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "email them"},
		{Role: llm.RoleTool, Name: "send_email", Content: "sent"},
	}, llm.WithTools(llm.Tool{Name: "send_email"}))
	require.NoError(t, err)

	require.Len(t, received.Messages, 2)
	assert.Equal(t, "send_email", received.Messages[1].ToolName)
	require.Len(t, received.Tools, 1)
	assert.False(t, received.Stream)

	assert.Equal(t, "check slots", msg.Reasoning)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call_0", msg.ToolCalls[0].ID)
	assert.JSONEq(t, `{"to":"a@b.c"}`, msg.ToolCalls[0].Arguments)
}
