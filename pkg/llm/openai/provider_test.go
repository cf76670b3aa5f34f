package openai

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

func TestChatMapsReasoningAndToolCalls(t *testing.T) {
	var received chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"","reasoning_content":"thinking...","tool_calls":[{"id":"c1","type":"function","function":{"name":"get_available_time_slots","arguments":"{}"}}]}}]}`))
	}))
	defer srv.Close()

	p := NewProvider("secret", srv.URL, "deepseek-reasoner")
	msg, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "is the candidate free?"},
	}, llm.WithTools(llm.Tool{Name: "get_available_time_slots"}))
	require.NoError(t, err)

	assert.Equal(t, "deepseek-reasoner", received.Model)
	require.Len(t, received.Tools, 1)
	assert.Equal(t, "function", received.Tools[0].Type)

	assert.Equal(t, "thinking...", msg.Reasoning)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "c1", msg.ToolCalls[0].ID)
	assert.Equal(t, "get_available_time_slots", msg.ToolCalls[0].Name)
}

func TestChatSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	_, err := NewProvider("", srv.URL, "m").Chat(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
