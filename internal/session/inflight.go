package session

import (
	"context"
	"errors"
	"sync"

	"github.com/carecompass/platform/internal/modules"
)

// ErrInFlight is returned when a module already has a pending submission.
var ErrInFlight = errors.New("session: a submission is already in flight for this module")

// InflightRegistry tracks running analyses per session+module so concurrent
// submissions can be rejected and navigation can cancel the work it leaves
// behind. It is in-process state: the instance that accepted a submission
// owns its lifetime.
type InflightRegistry struct {
	mu    sync.Mutex
	calls map[string]context.CancelFunc
}

func NewInflightRegistry() *InflightRegistry {
	return &InflightRegistry{calls: make(map[string]context.CancelFunc)}
}

// Begin registers a submission and returns a context tied to it. ErrInFlight
// means the previous call for this module has not finished.
func (r *InflightRegistry) Begin(ctx context.Context, sessionID string, m modules.Module) (context.Context, context.CancelFunc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := inflightKey(sessionID, m)
	if _, exists := r.calls[key]; exists {
		return nil, nil, ErrInFlight
	}

	ctx, cancel := context.WithCancel(ctx)
	r.calls[key] = cancel

	done := func() {
		r.mu.Lock()
		if current, ok := r.calls[key]; ok {
			delete(r.calls, key)
			current()
		}
		r.mu.Unlock()
	}
	return ctx, done, nil
}

// Cancel aborts the in-flight submission for one module, if any.
func (r *InflightRegistry) Cancel(sessionID string, m modules.Module) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := inflightKey(sessionID, m)
	cancel, ok := r.calls[key]
	if !ok {
		return false
	}
	delete(r.calls, key)
	cancel()
	return true
}

// CancelAll aborts every in-flight submission for a session. Used on
// navigation so a stale response never updates a view the user left.
func (r *InflightRegistry) CancelAll(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range modules.All() {
		key := inflightKey(sessionID, m)
		if cancel, ok := r.calls[key]; ok {
			delete(r.calls, key)
			cancel()
		}
	}
}

func inflightKey(sessionID string, m modules.Module) string {
	return sessionID + ":" + m.String()
}
