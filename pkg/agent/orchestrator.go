package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-recruiter-be/pkg/events"
	"ai-recruiter-be/pkg/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	moduleName = "Agent"
	tracerName = "ai-recruiter-be/agent"

	// TurnCompletedEvent is published after a turn's state is committed.
	TurnCompletedEvent = "agent.turn_completed"

	defaultPublishTimeout = 5 * time.Second
)

type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Request is one chat turn. A nil CandidateID keeps the conversation's
// selected candidate; an empty one clears it.
type Request struct {
	User           User
	Message        string
	ConversationID string
	CandidateID    *string
}

type Orchestrator struct {
	graph       *Graph
	checkpoints CheckpointStore
	publisher   EventPublisher
	logger      Logger
	locks       *turnLocks
	tracer      trace.Tracer

	// publishTimeout bounds each turn event publish, which runs after done.
	publishTimeout time.Duration
	publishing     sync.WaitGroup
}

// NewOrchestrator wires the compiled workflow to a checkpoint store.
// publisher may be nil.
func NewOrchestrator(checkpoints CheckpointStore, publisher EventPublisher, logger Logger) (*Orchestrator, error) {
	g, err := Compile()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		graph:          g,
		checkpoints:    checkpoints,
		publisher:      publisher,
		logger:         logger,
		locks:          newTurnLocks(),
		tracer:         otel.Tracer(tracerName),
		publishTimeout: defaultPublishTimeout,
	}, nil
}

// Close waits for turn events still being published.
func (o *Orchestrator) Close() {
	o.publishing.Wait()
}

func (o *Orchestrator) Graph() *Graph {
	return o.graph
}

// Workflow binds handlers and returns the graph topology without running it.
func (o *Orchestrator) Workflow(handlers Handlers) (Topology, error) {
	r, err := o.graph.Bind(handlers)
	if err != nil {
		return Topology{}, err
	}
	return r.Graph().Topology(), nil
}

// Stream runs one turn and returns its events. The channel is closed after
// the done event, which is always sent last unless ctx is cancelled first.
func (o *Orchestrator) Stream(ctx context.Context, req Request, handlers Handlers) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		emit := func(e Event) {
			select {
			case out <- e:
			case <-ctx.Done():
			}
		}

		if req.ConversationID == "" {
			req.ConversationID = uuid.NewString()
			emit(conversationEvent(req.ConversationID))
		}

		final, err := o.runTurn(ctx, req, handlers, emit)
		if err != nil {
			o.logger.Error(moduleName, "Turn failed", map[string]interface{}{
				"conversation_id": req.ConversationID,
				"user_id":         req.User.ID.String(),
				"error":           err.Error(),
			})
			emit(errorEvent(err))
		}
		emit(doneEvent())

		if final != nil {
			o.publishTurnCompleted(ctx, req, *final)
		}
	}()

	return out
}

// runTurn returns the committed state. The conversation lock is released
// when it returns.
func (o *Orchestrator) runTurn(ctx context.Context, req Request, handlers Handlers, emit func(Event)) (committed *State, err error) {
	defer func() {
		if p := recover(); p != nil {
			committed, err = nil, fmt.Errorf("turn panicked: %v", p)
		}
	}()

	conversationID := req.ConversationID

	ctx, span := o.tracer.Start(ctx, "agent.turn", trace.WithAttributes(
		attribute.String("conversation.id", conversationID),
		attribute.String("user.id", req.User.ID.String()),
		attribute.String("graph.version", o.graph.Version()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	runnable, err := o.graph.Bind(handlers)
	if err != nil {
		return nil, err
	}

	release, err := o.locks.acquire(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	defer release()

	key := CheckpointKey(conversationID, o.graph.Version())
	prev, err := o.checkpoints.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	var base State
	if prev != nil {
		base = *prev
	}
	initial := seedTurn(base, req.Message, req.CandidateID)

	started := time.Now()
	runCtx, hooks := withCommitHooks(WithRunInfo(ctx, RunInfo{UserID: req.User.ID, ThreadID: conversationID}))
	final, err := runnable.Run(runCtx, initial, func(step Step) {
		o.emitStep(step, emit)
	})
	if err != nil {
		return nil, err
	}

	if err := o.checkpoints.Save(ctx, key, final); err != nil {
		return nil, fmt.Errorf("save checkpoint: %w", err)
	}
	hooks.run()

	o.logger.Info(moduleName, "Turn completed", map[string]interface{}{
		"conversation_id": conversationID,
		"llm_calls":       final.LLMCalls,
		"messages":        len(final.Messages),
		"duration_ms":     time.Since(started).Milliseconds(),
	})
	return &final, nil
}

func (o *Orchestrator) emitStep(step Step, emit func(Event)) {
	emit(nodeEvent(step.Node))
	if len(step.Next) > 0 {
		emit(lookaheadEvent(step.Next[0]))
	}

	u := step.Update
	if len(u.Citations) > 0 {
		emit(Event{Type: EventCitations, Data: u.Citations})
	}
	if len(u.Candidates) > 0 {
		emit(Event{Type: EventCandidates, Data: u.Candidates})
	}
	if len(u.ResumeCandidates) > 0 {
		emit(Event{Type: EventResumeCandidates, Data: u.ResumeCandidates})
	}

	if len(u.Messages) == 1 && u.Messages[0].Role == llm.RoleAssistant {
		msg := u.Messages[0]
		if msg.Reasoning != "" {
			emit(Event{Type: EventReason, Data: TextPayload{Text: msg.Reasoning}})
		}
		emit(Event{Type: EventMessage, Data: TextPayload{Text: msg.Content}})
	}
}

// publishTurnCompleted sends the turn event in the background, bounded by
// publishTimeout and detached from the request's cancellation.
func (o *Orchestrator) publishTurnCompleted(ctx context.Context, req Request, final State) {
	if o.publisher == nil {
		return
	}

	event := events.New(TurnCompletedEvent, map[string]interface{}{
		"conversation_id": req.ConversationID,
		events.KeyUserID:  req.User.ID.String(),
		"candidate_id":    final.CandidateID,
		"route":           string(routeTurn(final)),
		"llm_calls":       final.LLMCalls,
		"citations":       len(final.Citations),
		"candidates":      len(final.Candidates),
	})

	o.publishing.Add(1)
	go func() {
		defer o.publishing.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.publishTimeout)
		defer cancel()

		if err := o.publisher.Publish(pubCtx, event); err != nil {
			o.logger.Warn(moduleName, "Failed to publish turn event", map[string]interface{}{
				"conversation_id": req.ConversationID,
				"error":           err.Error(),
			})
		}
	}()
}
