// Package clipstream exposes operating-system clipboard changes as a typed,
// multi-subscriber event stream. A Driver owns one background monitoring
// thread; any number of Streams consume its events independently.
package clipstream

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/internal/clipboard"
	"github.com/pasteworks/clipstream/internal/platform"
	"github.com/pasteworks/clipstream/pkg/types"
)

// startTimeout bounds how long Start waits for the observer goroutine to
// confirm platform setup.
const startTimeout = 10 * time.Second

// Options configures a Driver.
type Options struct {
	// CustomFormats are application-defined clipboard format names,
	// matched ahead of all built-in content kinds in the order given.
	CustomFormats []string

	// PollInterval is the pause between change checks. Zero means the
	// 200ms default.
	PollInterval time.Duration

	// MaxBytes caps any single payload read; larger payloads are skipped
	// as if absent. Zero means unlimited.
	MaxBytes int64

	// MaxImageBytes caps image payloads independently. Zero inherits
	// MaxBytes.
	MaxImageBytes int64

	// Logger receives structured diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// nextStreamID assigns process-unique subscriber identities.
var nextStreamID atomic.Uint64

// Driver owns the background clipboard monitoring thread and the subscriber
// registry. A returned Driver always wraps a live, successfully initialized
// observer.
type Driver struct {
	stop     *atomic.Bool
	done     chan struct{}
	registry *clipboard.Registry
	logger   *zap.Logger
	stopOnce sync.Once
}

// Start spawns the monitoring thread for this platform's clipboard and
// blocks until its setup succeeds or fails. On failure it returns an
// *types.InitializationError and leaves no background work running.
func Start(opts Options) (*Driver, error) {
	return start(opts, nil)
}

// start is the provider-injectable core of Start; tests pass a fake
// provider, production passes nil and gets the platform default built
// inside the observer goroutine.
func start(opts Options, provider platform.Provider) (*Driver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := clipboard.NewRegistry(logger)
	stop := &atomic.Bool{}
	done := make(chan struct{})
	initCh := make(chan error, 1)

	go func() {
		defer close(done)

		// Blocking native clipboard calls must stay on one OS thread so
		// they can never stall a cooperative scheduler in the host
		// application.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		prov := provider
		if prov == nil {
			prov = platform.New(logger)
		}

		for _, name := range opts.CustomFormats {
			if !prov.RegisterCustomFormat(name) {
				logger.Warn("custom format registration rejected",
					zap.String("format", name))
			}
		}

		// Probe the notification primitive once so a platform that
		// cannot monitor at all fails construction, not the first poll.
		if _, err := prov.WaitForChange(); err != nil {
			initCh <- err
			return
		}
		initCh <- nil

		classifier := clipboard.NewClassifier(clipboard.ClassifierOptions{
			CustomFormats: opts.CustomFormats,
			MaxBytes:      opts.MaxBytes,
			MaxImageBytes: opts.MaxImageBytes,
		}, logger)

		observer := clipboard.NewObserver(prov, classifier, opts.PollInterval, stop, logger)
		observer.Run(registry)

		// Whether the loop ended by request or by fatal monitor failure,
		// every stream ends here.
		registry.Shutdown()
	}()

	select {
	case err := <-initCh:
		if err != nil {
			<-done
			return nil, &types.InitializationError{Reason: "platform setup failed", Err: err}
		}
	case <-time.After(startTimeout):
		stop.Store(true)
		return nil, &types.InitializationError{Reason: "timed out waiting for observer startup"}
	}

	return &Driver{
		stop:     stop,
		done:     done,
		registry: registry,
		logger:   logger,
	}, nil
}

// NewStream registers a new subscriber and returns its stream handle. The
// buffer capacity decides how many undelivered events the subscriber may
// lag behind before events are dropped for it.
func (d *Driver) NewStream(capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultStreamBuffer
	}
	id := types.StreamID(nextStreamID.Add(1))
	ch := make(chan types.Result, capacity)
	d.registry.Register(id, ch)

	return &Stream{id: id, ch: ch, registry: d.registry}
}

// Stop signals the observer to halt and blocks until its thread has fully
// exited, then closes every subscriber stream. After Stop returns no
// further event can be delivered. Idempotent.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Debug("stopping clipboard driver")
		d.stop.Store(true)
		<-d.done
	})
}
