package agent

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

type NodeID string

const (
	Start              NodeID = "__start__"
	End                NodeID = "__end__"
	ScopeChecker       NodeID = "scope_checker"
	ParallelRetrieval  NodeID = "parallel_retrieval"
	ResumeRetrieval    NodeID = "resume_retrieval"
	CandidateRetrieval NodeID = "candidate_retrieval"
	Citations          NodeID = "citations"
	Chatbot            NodeID = "chatbot"
	ToolAgent          NodeID = "agent"
)

// Router picks the single successor of a node from the merged state.
type Router func(State) NodeID

type edge struct {
	from, to    NodeID
	conditional bool
}

// Graph is an immutable, validated workflow definition. Handlers are bound
// separately so one Graph serves every request.
type Graph struct {
	nodes   []NodeID
	edges   []edge
	routers map[NodeID]Router
	succ    map[NodeID][]NodeID
	// joins counts how many static predecessors must finish before a node runs.
	joins   map[NodeID]int
	version string
}

type GraphBuilder struct {
	nodes   []NodeID
	seen    map[NodeID]bool
	edges   []edge
	routers map[NodeID]Router
	errs    []string
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		seen:    map[NodeID]bool{Start: true, End: true},
		routers: make(map[NodeID]Router),
	}
}

func (b *GraphBuilder) AddNode(id NodeID) *GraphBuilder {
	if b.seen[id] {
		b.errs = append(b.errs, fmt.Sprintf("duplicate node %q", id))
		return b
	}
	b.seen[id] = true
	b.nodes = append(b.nodes, id)
	return b
}

func (b *GraphBuilder) AddEdge(from, to NodeID) *GraphBuilder {
	b.edges = append(b.edges, edge{from: from, to: to})
	return b
}

// AddConditionalEdges registers router on from. targets lists every node the
// router may return and is used for validation and topology export.
func (b *GraphBuilder) AddConditionalEdges(from NodeID, router Router, targets ...NodeID) *GraphBuilder {
	if _, dup := b.routers[from]; dup {
		b.errs = append(b.errs, fmt.Sprintf("node %q already has a router", from))
		return b
	}
	b.routers[from] = router
	for _, t := range targets {
		b.edges = append(b.edges, edge{from: from, to: t, conditional: true})
	}
	return b
}

func (b *GraphBuilder) Build() (*Graph, error) {
	errs := append([]string(nil), b.errs...)

	g := &Graph{
		nodes:   append([]NodeID(nil), b.nodes...),
		edges:   append([]edge(nil), b.edges...),
		routers: b.routers,
		succ:    make(map[NodeID][]NodeID),
		joins:   make(map[NodeID]int),
	}

	for _, e := range g.edges {
		if !b.seen[e.from] || e.from == End {
			errs = append(errs, fmt.Sprintf("edge from unknown node %q", e.from))
		}
		if !b.seen[e.to] || e.to == Start {
			errs = append(errs, fmt.Sprintf("edge to unknown node %q", e.to))
		}
		if e.conditional {
			continue
		}
		if _, routed := b.routers[e.from]; routed {
			errs = append(errs, fmt.Sprintf("node %q mixes static and conditional edges", e.from))
		}
		g.succ[e.from] = append(g.succ[e.from], e.to)
		g.joins[e.to]++
	}

	if len(g.succ[Start]) == 0 && g.routers[Start] == nil {
		errs = append(errs, "no entry edge from __start__")
	}
	for _, id := range g.nodes {
		if len(g.succ[id]) == 0 && g.routers[id] == nil {
			errs = append(errs, fmt.Sprintf("node %q has no outgoing edge", id))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid graph: %s", strings.Join(errs, "; "))
	}

	g.version = g.fingerprint()
	return g, nil
}

func (g *Graph) fingerprint() string {
	lines := make([]string, 0, len(g.nodes)+len(g.edges))
	for _, id := range g.nodes {
		lines = append(lines, "n:"+string(id))
	}
	for _, e := range g.edges {
		lines = append(lines, fmt.Sprintf("e:%s>%s:%t", e.from, e.to, e.conditional))
	}
	sort.Strings(lines)

	h := fnv.New64a()
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Version identifies the graph shape. Checkpoints written by one version are
// not read by another.
func (g *Graph) Version() string {
	return g.version
}

func (g *Graph) Nodes() []NodeID {
	return append([]NodeID(nil), g.nodes...)
}

// order is the declaration position of a node, used to make scheduling
// decisions deterministic.
func (g *Graph) order(id NodeID) int {
	switch id {
	case Start:
		return -1
	case End:
		return len(g.nodes)
	}
	for i, n := range g.nodes {
		if n == id {
			return i
		}
	}
	return len(g.nodes) + 1
}
