package clipboard

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/pkg/types"
)

// Registry fans clipboard results out to every live subscriber. A single
// mutex guards the map so each broadcast sees a consistent subscriber
// snapshot; sends are non-blocking so a stalled consumer can never hold up
// the observer or other consumers.
type Registry struct {
	mu      sync.Mutex
	senders map[types.StreamID]chan types.Result
	closed  bool
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		senders: make(map[types.StreamID]chan types.Result),
		logger:  logger,
	}
}

// Register adds or replaces the outbound channel for id. Registering after
// shutdown closes the channel immediately so the subscriber's stream ends.
func (r *Registry) Register(id types.StreamID, ch chan types.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		close(ch)
		return
	}
	r.senders[id] = ch
}

// Unregister removes and closes the channel for id. Idempotent: unknown ids
// are a no-op. This is the only place a live subscriber channel is closed,
// so a channel in the map is always safe to send on.
func (r *Registry) Unregister(id types.StreamID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.senders[id]; ok {
		delete(r.senders, id)
		close(ch)
	}
}

// Broadcast attempts a non-blocking send of result to every subscriber. A
// full channel is logged and skipped; the registration stays. Dropping a
// subscriber is solely the job of whoever disposes its stream.
func (r *Registry) Broadcast(result types.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ch := range r.senders {
		select {
		case ch <- result:
		default:
			r.logger.Warn("subscriber channel full, dropping clipboard event",
				zap.Uint64("stream_id", uint64(id)))
		}
	}
}

// Shutdown closes every subscriber channel and rejects future
// registrations. Broadcasts after shutdown are no-ops.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for id, ch := range r.senders {
		delete(r.senders, id)
		close(ch)
	}
}

// Subscribers returns the current registration count.
func (r *Registry) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.senders)
}
