package agent

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type memoryStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Load(_ context.Context, key string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memoryStore) Save(_ context.Context, key string, s State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	m.saves++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

func noop(context.Context, State) (Update, error) { return Update{}, nil }

func reply(text string) Handler {
	return func(context.Context, State) (Update, error) {
		return Update{Messages: []llm.Message{{Role: llm.RoleAssistant, Content: text}}, LLMCalls: 1}, nil
	}
}

// fakeHandlers returns a handler set where every node succeeds.
func fakeHandlers() Handlers {
	return Handlers{
		ScopeChecker:      noop,
		ParallelRetrieval: noop,
		ResumeRetrieval: func(context.Context, State) (Update, error) {
			return Update{ResumeRetrievedPoints: []vectorstore.Point{{ID: "r1", Score: 0.9}}}, nil
		},
		CandidateRetrieval: func(context.Context, State) (Update, error) {
			return Update{CandidateRetrievedPoints: []vectorstore.Point{{ID: "c1", Score: 0.8}}}, nil
		},
		Citations: func(context.Context, State) (Update, error) {
			return Update{
				Citations:        []File{{Filename: "cv.pdf"}},
				Candidates:       []ScoredCandidate{{Candidate: Candidate{Name: "Ada"}, Score: 0.8}},
				ResumeCandidates: []ResumeCandidate{},
			}, nil
		},
		Chatbot:   reply("Ada looks like a fit."),
		ToolAgent: reply("Scheduled."),
	}
}

func newTestOrchestrator(t *testing.T, store CheckpointStore) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(store, nil, nopLogger{})
	require.NoError(t, err)
	return o
}

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		case <-timeout:
			t.Fatal("stream did not finish")
			return out
		}
	}
}

// eventTrace renders events as "type" or "type:data" for strings, skipping lookahead.
func eventTrace(events []Event) []string {
	var out []string
	for _, e := range events {
		if e.Lookahead {
			continue
		}
		if s, ok := e.Data.(string); ok && e.Type == EventNode {
			out = append(out, "node:"+s)
			continue
		}
		out = append(out, string(e.Type))
	}
	return out
}

func strPtr(s string) *string { return &s }

// recordSpans installs a global tracer provider backed by a span recorder for
// the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func spansByName(spans []sdktrace.ReadOnlySpan) map[string]sdktrace.ReadOnlySpan {
	out := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		out[s.Name()] = s
	}
	return out
}
