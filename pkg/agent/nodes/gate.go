// Package nodes implements the recruiting workflow's graph nodes.
package nodes

import (
	"context"

	"ai-recruiter-be/pkg/agent"
)

const moduleName = "AgentNode"

// ScopeChecker records which branch the turn takes. The branch itself is
// chosen by agent.HasSelectedCandidate on the edge out of this node.
func ScopeChecker(logger agent.Logger) agent.Handler {
	return func(_ context.Context, s agent.State) (agent.Update, error) {
		logger.Debug(moduleName, "Scope checked", map[string]interface{}{
			"candidate_id": s.CandidateID,
			"tool_agent":   agent.HasSelectedCandidate(s),
		})
		return agent.Update{}, nil
	}
}

// ParallelRetrieval fans out to both retrieval nodes.
func ParallelRetrieval() agent.Handler {
	return func(context.Context, agent.State) (agent.Update, error) {
		return agent.Update{}, nil
	}
}
