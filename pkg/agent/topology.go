package agent

import (
	"fmt"
	"strings"
)

type TopologyNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TopologyEdge struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Conditional bool   `json:"conditional"`
}

type TopologyState struct {
	Nodes []TopologyNode `json:"nodes"`
	Edges []TopologyEdge `json:"edges"`
}

// Topology is the exported shape of a graph, for visualisation only.
type Topology struct {
	Mermaid string        `json:"mermaid"`
	State   TopologyState `json:"state"`
}

func (g *Graph) Topology() Topology {
	all := make([]NodeID, 0, len(g.nodes)+2)
	all = append(all, Start)
	all = append(all, g.nodes...)
	all = append(all, End)

	st := TopologyState{
		Nodes: make([]TopologyNode, 0, len(all)),
		Edges: make([]TopologyEdge, 0, len(g.edges)),
	}
	for _, id := range all {
		st.Nodes = append(st.Nodes, TopologyNode{ID: string(id), Name: string(id)})
	}
	for _, e := range g.edges {
		st.Edges = append(st.Edges, TopologyEdge{Source: string(e.from), Target: string(e.to), Conditional: e.conditional})
	}

	return Topology{Mermaid: g.mermaid(all), State: st}
}

func (g *Graph) mermaid(all []NodeID) string {
	var b strings.Builder
	b.WriteString("---\nconfig:\n  flowchart:\n    curve: linear\n---\ngraph TD;\n")
	for _, id := range all {
		switch id {
		case Start:
			fmt.Fprintf(&b, "\t%s([<p>%s</p>]):::first\n", id, id)
		case End:
			fmt.Fprintf(&b, "\t%s([<p>%s</p>]):::last\n", id, id)
		default:
			fmt.Fprintf(&b, "\t%s(%s)\n", id, id)
		}
	}
	for _, e := range g.edges {
		arrow := "-->"
		if e.conditional {
			arrow = "-.->"
		}
		fmt.Fprintf(&b, "\t%s %s %s;\n", e.from, arrow, e.to)
	}
	b.WriteString("\tclassDef default fill:#f2f0ff,line-height:1.2\n")
	b.WriteString("\tclassDef first fill-opacity:0\n")
	b.WriteString("\tclassDef last fill:#bfb6fc\n")
	return b.String()
}
