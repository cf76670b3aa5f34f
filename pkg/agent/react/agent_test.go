package react

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel replays canned replies and records what it was sent.
type scriptedModel struct {
	replies []llm.Message
	calls   [][]llm.Message
	tools   [][]llm.Tool
	err     error
}

func (m *scriptedModel) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	m.calls = append(m.calls, history)
	m.tools = append(m.tools, llm.Apply(llm.Options{}, opts...).Tools)
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.calls) - 1
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	reply := m.replies[i]
	return &reply, nil
}

func (m *scriptedModel) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

type echoTool struct {
	name string
	err  error
	args []string
}

func (t *echoTool) Definition() llm.Tool {
	return llm.Tool{Name: t.name, Description: "echo", Parameters: map[string]interface{}{"type": "object"}}
}

func (t *echoTool) Call(_ context.Context, arguments string) (string, error) {
	t.args = append(t.args, arguments)
	if t.err != nil {
		return "", t.err
	}
	return "echo:" + arguments, nil
}

func toolCall(id, name, args string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{{ID: id, Name: name, Arguments: args}}}
}

func TestInvoke_RunsToolsUntilAnswer(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		toolCall("call_0", "echo", `{"x":1}`),
		{Role: llm.RoleAssistant, Content: "done"},
	}}
	tool := &echoTool{name: "echo"}
	a := New(model, NewMemory(time.Minute), 5, tool)

	res, err := a.Invoke(context.Background(), "t1", "system prompt", "please echo")
	require.NoError(t, err)

	assert.Equal(t, "done", res.Message.Content)
	assert.Equal(t, 2, res.LLMCalls)
	assert.Equal(t, []string{`{"x":1}`}, tool.args)

	second := model.calls[1]
	assert.Equal(t, llm.RoleSystem, second[0].Role)
	last := second[len(second)-1]
	assert.Equal(t, llm.RoleTool, last.Role)
	assert.Equal(t, "call_0", last.ToolCallID)
	assert.Equal(t, `echo:{"x":1}`, last.Content)
	require.Len(t, model.tools[0], 1)
	assert.Equal(t, "echo", model.tools[0][0].Name)
}

func TestInvoke_StopsAtRoundCap(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{toolCall("c", "echo", "{}")}}
	a := New(model, NewMemory(time.Minute), 3, &echoTool{name: "echo"})

	res, err := a.Invoke(context.Background(), "t1", "", "loop forever")
	require.NoError(t, err)

	assert.Equal(t, 3, res.LLMCalls)
	assert.Equal(t, exhaustedReply, res.Message.Content)
	assert.Empty(t, res.Message.ToolCalls)
}

func TestInvoke_ThreadMemoryCarriesOver(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{{Role: llm.RoleAssistant, Content: "ok"}}}
	mem := NewMemory(time.Minute)
	a := New(model, mem, 5)

	res, err := a.Invoke(context.Background(), "thread", "sys", "first")
	require.NoError(t, err)
	a.Remember("thread", res.Transcript)
	res, err = a.Invoke(context.Background(), "thread", "sys", "second")
	require.NoError(t, err)
	a.Remember("thread", res.Transcript)
	_, err = a.Invoke(context.Background(), "other", "sys", "third")
	require.NoError(t, err)

	assert.Len(t, model.calls[1], 4, "system + first + ok + second")
	assert.Len(t, model.calls[2], 2, "system + third")
	assert.Len(t, mem.History("thread"), 4)
	assert.Empty(t, mem.History("other"), "transcripts are only kept once remembered")
}

func TestInvoke_DoesNotWriteMemory(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{toolCall("c", "echo", "{}")}}
	mem := NewMemory(time.Minute)
	a := New(model, mem, 2, &echoTool{name: "echo"})

	res, err := a.Invoke(context.Background(), "t", "", "go")
	require.NoError(t, err)

	assert.Empty(t, mem.History("t"))
	require.Len(t, res.Transcript, 5, "user + (call + result) x2")
	assert.Equal(t, "go", res.Transcript[0].Content)
	assert.Equal(t, llm.RoleTool, res.Transcript[4].Role)
}

func TestInvoke_BadArgumentsGoBackToModel(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		toolCall("c1", "echo", "{}"),
		{Role: llm.RoleAssistant, Content: "fixed"},
	}}
	a := New(model, NewMemory(time.Minute), 5, &echoTool{name: "echo", err: apperror.BadRequest("missing field to")})

	res, err := a.Invoke(context.Background(), "t", "", "go")
	require.NoError(t, err)

	assert.Equal(t, "fixed", res.Message.Content)
	toolMsg := model.calls[1][len(model.calls[1])-1]
	assert.Equal(t, "Error: missing field to", toolMsg.Content)
}

func TestInvoke_UnknownToolIsReported(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		toolCall("c1", "nope", "{}"),
		{Role: llm.RoleAssistant, Content: "sorry"},
	}}
	a := New(model, NewMemory(time.Minute), 5)

	res, err := a.Invoke(context.Background(), "t", "", "go")
	require.NoError(t, err)
	assert.Equal(t, "sorry", res.Message.Content)
	assert.Contains(t, model.calls[1][len(model.calls[1])-1].Content, "unknown tool")
}

func TestInvoke_ToolFailureAborts(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{toolCall("c1", "echo", "{}")}}
	mem := NewMemory(time.Minute)
	a := New(model, mem, 5, &echoTool{name: "echo", err: apperror.Upstream("smtp down", errors.New("dial"))})

	_, err := a.Invoke(context.Background(), "t", "", "go")
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
	assert.Empty(t, mem.History("t"), "aborted runs leave memory untouched")
}

func TestInvoke_ModelFailureIsUpstream(t *testing.T) {
	a := New(&scriptedModel{err: errors.New("503")}, NewMemory(time.Minute), 5)

	_, err := a.Invoke(context.Background(), "t", "", "go")
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
}
