package nodes

import (
	"context"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"
)

// Chatbot answers the user from the resolved candidates and resume excerpts.
type Chatbot struct {
	Model   llm.LLMProvider
	Options []llm.Option
	Logger  agent.Logger
}

func (n *Chatbot) Handle(ctx context.Context, s agent.State) (agent.Update, error) {
	system := SynthesisPrompt(s.Candidates, s.ResumeCandidates)

	msgs := make([]llm.Message, 0, len(s.Messages)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	msgs = append(msgs, s.Messages...)

	n.Logger.Debug(moduleName, "Synthesizing answer", map[string]interface{}{
		"history":    len(s.Messages),
		"candidates": len(s.Candidates),
		"resumes":    len(s.ResumeCandidates),
	})

	reply, err := n.Model.Chat(ctx, msgs, n.Options...)
	if err != nil {
		return agent.Update{}, apperror.Upstream("chat model call failed", err)
	}
	reply.Role = llm.RoleAssistant
	reply.ToolCalls = nil

	return agent.Update{Messages: []llm.Message{*reply}, LLMCalls: 1}, nil
}
