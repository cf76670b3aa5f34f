package nodes

import (
	"context"
	"time"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/agent/react"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"

	"github.com/google/uuid"
)

// ToolAgent hands the latest message to the bounded tool loop, scoped to the
// conversation's selected candidate.
type ToolAgent struct {
	Directory agent.Directory
	Agent     *react.Agent
	Options   []llm.Option
	Now       func() time.Time
	Logger    agent.Logger
}

func (n *ToolAgent) Handle(ctx context.Context, s agent.State) (agent.Update, error) {
	info, ok := agent.RunInfoFrom(ctx)
	if !ok || info.UserID == uuid.Nil {
		return agent.Update{}, apperror.Unauthorized("User not found")
	}

	id, err := uuid.Parse(s.CandidateID)
	if err != nil {
		return agent.Update{}, apperror.NotFound("Candidate %s not found", s.CandidateID)
	}
	candidate, err := n.Directory.GetCandidateByID(ctx, id, info.UserID)
	if err != nil {
		return agent.Update{}, apperror.Upstream("failed to load candidate", err)
	}
	if candidate == nil {
		return agent.Update{}, apperror.NotFound("Candidate %s not found", id)
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	threadID := info.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	n.Logger.Debug(moduleName, "Running tool agent", map[string]interface{}{
		"candidate_id": id.String(),
		"thread_id":    threadID,
	})

	res, err := n.Agent.Invoke(ctx, threadID, AgentPrompt(*candidate, now()), s.LastHumanMessage(), n.Options...)
	if err != nil {
		return agent.Update{}, err
	}
	agent.AfterCommit(ctx, func() { n.Agent.Remember(threadID, res.Transcript) })
	return agent.Update{Messages: []llm.Message{res.Message}, LLMCalls: res.LLMCalls}, nil
}
