// Package react runs a bounded tool-calling loop against a chat model.
package react

import (
	"context"
	"errors"
	"fmt"

	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"
)

const DefaultMaxRounds = 5

const exhaustedReply = "I could not finish this request within the allowed number of tool steps."

// Tool is a function the model may call. Errors of kind BadRequest are
// reported back to the model; any other error aborts the loop.
type Tool interface {
	Definition() llm.Tool
	Call(ctx context.Context, arguments string) (string, error)
}

type Agent struct {
	model     llm.LLMProvider
	memory    *Memory
	tools     map[string]Tool
	defs      []llm.Tool
	maxRounds int
}

// Result is one finished invocation. Transcript is the thread's full history
// including this turn; it is not stored until passed to Remember.
type Result struct {
	Message    llm.Message
	LLMCalls   int
	Transcript []llm.Message
}

func New(model llm.LLMProvider, memory *Memory, maxRounds int, tools ...Tool) *Agent {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	a := &Agent{
		model:     model,
		memory:    memory,
		tools:     make(map[string]Tool, len(tools)),
		maxRounds: maxRounds,
	}
	for _, t := range tools {
		def := t.Definition()
		a.tools[def.Name] = t
		a.defs = append(a.defs, def)
	}
	return a
}

// Invoke appends input to the thread's transcript and calls the model until
// it answers without requesting a tool, or until maxRounds model calls have
// been made. The system prompt is sent on every call but never stored.
// Memory is read but not written.
func (a *Agent) Invoke(ctx context.Context, threadID, system, input string, opts ...llm.Option) (*Result, error) {
	history := a.memory.History(threadID)
	history = append(history, llm.Message{Role: llm.RoleUser, Content: input})
	turnStart := len(history)

	opts = append(opts, llm.WithTools(a.defs...))
	res := &Result{}

	for round := 0; round < a.maxRounds; round++ {
		msgs := make([]llm.Message, 0, len(history)+1)
		if system != "" {
			msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
		}
		msgs = append(msgs, history...)

		reply, err := a.model.Chat(ctx, msgs, opts...)
		res.LLMCalls++
		if err != nil {
			return nil, apperror.Upstream("agent model call failed", err)
		}
		reply.Role = llm.RoleAssistant
		history = append(history, *reply)

		if len(reply.ToolCalls) == 0 {
			res.Message = *reply
			res.Transcript = history
			return res, nil
		}

		for _, call := range reply.ToolCalls {
			out, err := a.run(ctx, call)
			if err != nil {
				return nil, err
			}
			history = append(history, llm.Message{
				Role:       llm.RoleTool,
				Content:    out,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	res.Message = lastAnswer(history[turnStart:])
	res.Transcript = history
	return res, nil
}

// Remember stores a transcript returned by Invoke as the thread's history.
func (a *Agent) Remember(threadID string, transcript []llm.Message) {
	a.memory.Save(threadID, transcript)
}

func (a *Agent) run(ctx context.Context, call llm.ToolCall) (string, error) {
	tool, ok := a.tools[call.Name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", call.Name), nil
	}

	out, err := tool.Call(ctx, call.Arguments)
	if err == nil {
		return out, nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindBadRequest {
		return "Error: " + appErr.Message, nil
	}
	return "", err
}

// lastAnswer picks the newest assistant text once the round budget is spent.
func lastAnswer(history []llm.Message) llm.Message {
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.Role == llm.RoleAssistant && m.Content != "" {
			return llm.Message{Role: llm.RoleAssistant, Content: m.Content, Reasoning: m.Reasoning}
		}
	}
	return llm.Message{Role: llm.RoleAssistant, Content: exhaustedReply}
}
