package nodes

import "ai-recruiter-be/pkg/agent"

// Set is one request's node instances.
type Set struct {
	ResumeRetrieval    *ResumeRetrieval
	CandidateRetrieval *CandidateRetrieval
	Citations          *Citations
	Chatbot            *Chatbot
	ToolAgent          *ToolAgent
	Logger             agent.Logger
}

func (s Set) Handlers() agent.Handlers {
	return agent.Handlers{
		agent.ScopeChecker:       ScopeChecker(s.Logger),
		agent.ParallelRetrieval:  ParallelRetrieval(),
		agent.ResumeRetrieval:    s.ResumeRetrieval.Handle,
		agent.CandidateRetrieval: s.CandidateRetrieval.Handle,
		agent.Citations:          s.Citations.Handle,
		agent.Chatbot:            s.Chatbot.Handle,
		agent.ToolAgent:          s.ToolAgent.Handle,
	}
}
