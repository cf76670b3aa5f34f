package agent

import (
	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/vectorstore"
)

// State is the per-conversation graph state. Nodes receive a copy and return
// an Update; only the runner merges.
type State struct {
	Messages                 []llm.Message       `json:"messages"`
	LLMCalls                 int                 `json:"llm_calls"`
	ResumeRetrievedPoints    []vectorstore.Point `json:"resume_retrieved_points"`
	CandidateRetrievedPoints []vectorstore.Point `json:"candidate_retrieved_points"`
	Citations                []File              `json:"citations"`
	Candidates               []ScoredCandidate   `json:"candidates"`
	ResumeCandidates         []ResumeCandidate   `json:"resume_candidates"`
	CandidateID              string              `json:"candidate_id,omitempty"`
}

// LastHumanMessage returns the content of the most recent user message.
func (s State) LastHumanMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == llm.RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}

// HasSelectedCandidate is the routing predicate: a selected candidate sends
// the turn to the tool agent instead of retrieval.
func HasSelectedCandidate(s State) bool {
	return s.CandidateID != ""
}

// Update is a node's partial result. Messages are appended and LLMCalls is
// added; every other field replaces the state field when non-nil.
type Update struct {
	Messages                 []llm.Message
	LLMCalls                 int
	ResumeRetrievedPoints    []vectorstore.Point
	CandidateRetrievedPoints []vectorstore.Point
	Citations                []File
	Candidates               []ScoredCandidate
	ResumeCandidates         []ResumeCandidate
}

// Merge applies u to s and returns the new state. s is not modified.
func Merge(s State, u Update) State {
	out := s

	if len(u.Messages) > 0 {
		msgs := make([]llm.Message, 0, len(s.Messages)+len(u.Messages))
		msgs = append(msgs, s.Messages...)
		out.Messages = append(msgs, u.Messages...)
	}
	if u.LLMCalls > 0 {
		out.LLMCalls += u.LLMCalls
	}
	if u.ResumeRetrievedPoints != nil {
		out.ResumeRetrievedPoints = u.ResumeRetrievedPoints
	}
	if u.CandidateRetrievedPoints != nil {
		out.CandidateRetrievedPoints = u.CandidateRetrievedPoints
	}
	if u.Citations != nil {
		out.Citations = u.Citations
	}
	if u.Candidates != nil {
		out.Candidates = u.Candidates
	}
	if u.ResumeCandidates != nil {
		out.ResumeCandidates = u.ResumeCandidates
	}
	return out
}

// seedTurn prepares the checkpointed state for a new turn: turn-scoped fields
// are cleared, the human message is appended, and the candidate selector is
// updated when the request carries one.
func seedTurn(prev State, message string, candidateID *string) State {
	next := State{
		Messages:    prev.Messages,
		CandidateID: prev.CandidateID,
	}
	if candidateID != nil {
		next.CandidateID = *candidateID
	}
	return Merge(next, Update{Messages: []llm.Message{{Role: llm.RoleUser, Content: message}}})
}
