// Command workflow prints the agent graph: its version, edges and mermaid source.
package main

import (
	"fmt"
	"log"
	"os"

	"ai-recruiter-be/pkg/agent"

	"github.com/fatih/color"
)

func main() {
	g, err := agent.Compile()
	if err != nil {
		log.Fatalf("compile workflow: %v", err)
	}
	topo := g.Topology()

	title := color.New(color.FgCyan, color.Bold)
	node := color.New(color.FgGreen)
	cond := color.New(color.FgYellow)

	title.Printf("Agent workflow %s\n\n", g.Version())

	title.Println("Nodes")
	for _, n := range topo.State.Nodes {
		node.Printf("  %s\n", n.ID)
	}

	fmt.Println()
	title.Println("Edges")
	for _, e := range topo.State.Edges {
		if e.Conditional {
			cond.Printf("  %s -.-> %s\n", e.Source, e.Target)
			continue
		}
		fmt.Printf("  %s --> %s\n", e.Source, e.Target)
	}

	if len(os.Args) > 1 && os.Args[1] == "-mermaid" {
		fmt.Println()
		fmt.Println(topo.Mermaid)
	}
}
