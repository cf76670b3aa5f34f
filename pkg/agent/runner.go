package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Handler is one node's behavior. It must not retain or mutate s.
type Handler func(ctx context.Context, s State) (Update, error)

type Handlers map[NodeID]Handler

// Step reports one finished node. State is the merged state after the node's
// update; Next lists the nodes scheduled or still running, in declaration order.
type Step struct {
	Node   NodeID
	Update Update
	State  State
	Next   []NodeID
}

var ErrGraphStalled = errors.New("graph stopped before reaching __end__")

// Runnable is a Graph bound to request-scoped handlers.
type Runnable struct {
	graph    *Graph
	handlers Handlers
	tracer   trace.Tracer
}

// Bind checks that every node has exactly one handler.
func (g *Graph) Bind(handlers Handlers) (*Runnable, error) {
	for _, id := range g.nodes {
		if handlers[id] == nil {
			return nil, fmt.Errorf("no handler bound for node %q", id)
		}
	}
	for id := range handlers {
		if g.order(id) >= len(g.nodes) || id == Start {
			return nil, fmt.Errorf("handler bound for unknown node %q", id)
		}
	}
	return &Runnable{graph: g, handlers: handlers, tracer: otel.Tracer(tracerName)}, nil
}

func (r *Runnable) Graph() *Graph {
	return r.graph
}

type nodeResult struct {
	id     NodeID
	update Update
	err    error
}

// Run executes the graph from __start__ until __end__ is reached. Nodes whose
// predecessors have all finished run concurrently on a snapshot of the state;
// their updates are merged in completion order. A failing node does not cancel
// its running siblings, but the run stops at the first failure: onStep is not
// called again and the error is returned once the siblings have returned.
func (r *Runnable) Run(ctx context.Context, initial State, onStep func(Step)) (State, error) {
	g := r.graph

	var eg errgroup.Group
	results := make(chan nodeResult, len(g.nodes))
	state := initial
	arrived := make(map[NodeID]int)
	started := make(map[NodeID]bool)
	running := make(map[NodeID]bool)
	reachedEnd := false

	launch := func(id NodeID) error {
		if id == End {
			reachedEnd = true
			return nil
		}
		arrived[id]++
		need := g.joins[id]
		if need == 0 {
			need = 1
		}
		if arrived[id] < need {
			return nil
		}
		if started[id] {
			return fmt.Errorf("node %q scheduled twice in one run", id)
		}
		started[id] = true
		running[id] = true

		snapshot := state
		handler := r.handlers[id]
		eg.Go(func() error {
			update, err := r.invoke(ctx, id, handler, snapshot)
			results <- nodeResult{id: id, update: update, err: err}
			return nil
		})
		return nil
	}

	advance := func(from NodeID) error {
		next, err := r.successors(from, state)
		if err != nil {
			return err
		}
		for _, id := range next {
			if err := launch(id); err != nil {
				return err
			}
		}
		return nil
	}

	fail := func(err error) (State, error) {
		_ = eg.Wait()
		return state, err
	}

	if err := advance(Start); err != nil {
		return fail(err)
	}

	for len(running) > 0 {
		var res nodeResult
		select {
		case res = <-results:
		case <-ctx.Done():
			return fail(ctx.Err())
		}
		if res.err != nil {
			return fail(res.err)
		}
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		delete(running, res.id)
		state = Merge(state, res.update)
		if err := advance(res.id); err != nil {
			return fail(err)
		}
		if onStep != nil {
			onStep(Step{Node: res.id, Update: res.update, State: state, Next: r.pending(running)})
		}
	}

	if !reachedEnd {
		return state, ErrGraphStalled
	}
	return state, nil
}

func (r *Runnable) successors(from NodeID, s State) ([]NodeID, error) {
	g := r.graph
	router, ok := g.routers[from]
	if !ok {
		return g.succ[from], nil
	}
	target := router(s)
	for _, e := range g.edges {
		if e.conditional && e.from == from && e.to == target {
			return []NodeID{target}, nil
		}
	}
	return nil, fmt.Errorf("router on %q returned undeclared target %q", from, target)
}

func (r *Runnable) pending(running map[NodeID]bool) []NodeID {
	out := make([]NodeID, 0, len(running))
	for id := range running {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.graph.order(out[i]) < r.graph.order(out[j])
	})
	return out
}

// invoke runs one handler inside an agent.node/<id> span. A panic becomes
// the node's error.
func (r *Runnable) invoke(ctx context.Context, id NodeID, h Handler, s State) (update Update, err error) {
	ctx, span := r.tracer.Start(ctx, "agent.node/"+string(id), trace.WithAttributes(
		attribute.String("node.id", string(id)),
	))
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("node %s panicked: %v", id, p)
			span.SetAttributes(attribute.Bool("node.panicked", true))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return h(ctx, s)
}
