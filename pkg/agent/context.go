package agent

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type runInfoKey struct{}

// RunInfo identifies who a turn runs for and which thread it belongs to.
type RunInfo struct {
	UserID   uuid.UUID
	ThreadID string
}

func WithRunInfo(ctx context.Context, info RunInfo) context.Context {
	return context.WithValue(ctx, runInfoKey{}, info)
}

func RunInfoFrom(ctx context.Context) (RunInfo, bool) {
	info, ok := ctx.Value(runInfoKey{}).(RunInfo)
	return info, ok
}

type commitHooksKey struct{}

// commitHooks collects side effects that must only happen once the turn's
// state is checkpointed.
type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

func withCommitHooks(ctx context.Context) (context.Context, *commitHooks) {
	h := &commitHooks{}
	return context.WithValue(ctx, commitHooksKey{}, h), h
}

func (h *commitHooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// AfterCommit defers fn until the running turn is checkpointed; it is dropped
// if the turn fails. Outside a turn fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	h, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}
