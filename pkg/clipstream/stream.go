package clipstream

import (
	"github.com/pasteworks/clipstream/internal/clipboard"
	"github.com/pasteworks/clipstream/pkg/types"
)

// DefaultStreamBuffer is the subscriber channel capacity used when none is
// given.
const DefaultStreamBuffer = 32

// Stream is one subscriber's view of the clipboard event sequence. Results
// arrive in event order; the channel closes when the stream is closed or
// the backing driver stops. Streams are not restartable.
type Stream struct {
	id       types.StreamID
	ch       chan types.Result
	registry *clipboard.Registry
}

// Results returns the receive side of the stream. Successful
// classifications and per-event errors are interleaved in the order the
// clipboard changes occurred.
func (s *Stream) Results() <-chan types.Result {
	return s.ch
}

// Close unregisters the subscriber and ends its result channel. Safe to
// call more than once and after the driver has stopped.
func (s *Stream) Close() {
	s.registry.Unregister(s.id)
}
