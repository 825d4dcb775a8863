package clipboard

import (
	"fmt"
	"sync"

	"github.com/pasteworks/clipstream/internal/platform"
)

// fakeSession is a deterministic clipboard snapshot for classifier tests.
type fakeSession struct {
	formats  map[string][]byte
	sizes    map[string]int64 // advertised-size overrides
	files    []string
	filesErr error
	readErr  map[string]error
	closed   bool
}

func (s *fakeSession) AdvertiseSize(format string) (int64, bool) {
	if size, ok := s.sizes[format]; ok {
		return size, true
	}
	data, ok := s.formats[format]
	if !ok {
		return 0, false
	}
	return int64(len(data)), true
}

func (s *fakeSession) Read(format string) ([]byte, error) {
	if err := s.readErr[format]; err != nil {
		return nil, err
	}
	data, ok := s.formats[format]
	if !ok {
		return nil, fmt.Errorf("format %q not present", format)
	}
	return data, nil
}

func (s *fakeSession) FileList() ([]string, error) {
	return s.files, s.filesErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// fakeEvent is one scripted outcome of a change-detection poll.
type fakeEvent struct {
	session *fakeSession
	fatal   error
}

// fakeProvider feeds the observer a scripted sequence of change events.
// Polls with no pending event report NoChange.
type fakeProvider struct {
	mu         sync.Mutex
	events     chan fakeEvent
	next       *fakeSession
	openErr    error
	registered []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{events: make(chan fakeEvent, 16)}
}

func (p *fakeProvider) push(sess *fakeSession) {
	p.events <- fakeEvent{session: sess}
}

func (p *fakeProvider) pushFatal(err error) {
	p.events <- fakeEvent{fatal: err}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) RegisterCustomFormat(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, name)
	return true
}

func (p *fakeProvider) WaitForChange() (platform.Change, error) {
	select {
	case ev := <-p.events:
		if ev.fatal != nil {
			return platform.NoChange, ev.fatal
		}
		p.mu.Lock()
		p.next = ev.session
		p.mu.Unlock()
		return platform.Changed, nil
	default:
		return platform.NoChange, nil
	}
}

func (p *fakeProvider) Open() (platform.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.next, nil
}
