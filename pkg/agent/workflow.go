package agent

import (
	"sync"
)

var (
	compileOnce sync.Once
	compiled    *Graph
	compileErr  error
)

// Compile returns the recruiting workflow. It is built once per process.
func Compile() (*Graph, error) {
	compileOnce.Do(func() {
		compiled, compileErr = NewGraphBuilder().
			AddNode(ScopeChecker).
			AddNode(ParallelRetrieval).
			AddNode(ResumeRetrieval).
			AddNode(CandidateRetrieval).
			AddNode(Citations).
			AddNode(Chatbot).
			AddNode(ToolAgent).
			AddEdge(Start, ScopeChecker).
			AddConditionalEdges(ScopeChecker, routeTurn, ToolAgent, ParallelRetrieval).
			AddEdge(ParallelRetrieval, ResumeRetrieval).
			AddEdge(ParallelRetrieval, CandidateRetrieval).
			AddEdge(ResumeRetrieval, Citations).
			AddEdge(CandidateRetrieval, Citations).
			AddEdge(Citations, Chatbot).
			AddEdge(Chatbot, End).
			AddEdge(ToolAgent, End).
			Build()
	})
	return compiled, compileErr
}

func routeTurn(s State) NodeID {
	if HasSelectedCandidate(s) {
		return ToolAgent
	}
	return ParallelRetrieval
}
