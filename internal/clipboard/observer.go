package clipboard

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/internal/platform"
	"github.com/pasteworks/clipstream/pkg/types"
)

// DefaultPollInterval is how long the observer parks between change checks.
const DefaultPollInterval = 200 * time.Millisecond

// Observer is the per-driver monitoring loop. It alternates between waiting
// for a change notification and classifying the new clipboard snapshot,
// delivering every outcome to the registry. It exits when the shared stop
// flag is set, or on its own when the provider reports that monitoring
// itself has failed.
type Observer struct {
	provider   platform.Provider
	classifier *Classifier
	interval   time.Duration
	stop       *atomic.Bool
	logger     *zap.Logger
}

func NewObserver(provider platform.Provider, classifier *Classifier, interval time.Duration, stop *atomic.Bool, logger *zap.Logger) *Observer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Observer{
		provider:   provider,
		classifier: classifier,
		interval:   interval,
		stop:       stop,
		logger:     logger,
	}
}

// Run executes the monitoring loop until stopped. Per-event failures are
// reported to subscribers and the loop keeps going; a fatal wait error is
// broadcast once and ends the loop.
func (o *Observer) Run(registry *Registry) {
	o.logger.Info("clipboard observer started",
		zap.String("provider", o.provider.Name()),
		zap.Duration("poll_interval", o.interval))

	for !o.stop.Load() {
		change, err := o.provider.WaitForChange()
		if err != nil {
			o.logger.Error("clipboard monitoring failed", zap.Error(err))
			registry.Broadcast(types.Result{Err: &types.MonitorFailedError{Err: err}})
			return
		}

		if change == platform.NoChange {
			time.Sleep(o.interval)
			continue
		}

		registry.Broadcast(o.collect())
	}

	o.logger.Info("clipboard observer stopped")
}

// collect runs one classification attempt. The clipboard session is
// released before the result is broadcast, so the native handle is never
// held while the registry lock is.
func (o *Observer) collect() types.Result {
	sess, err := o.provider.Open()
	if err != nil {
		return types.Result{Err: &types.ReadError{Err: err}}
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			o.logger.Warn("failed to release clipboard", zap.Error(cerr))
		}
	}()

	body, err := o.classifier.Classify(sess)
	if err != nil {
		return types.Result{Err: err}
	}
	return types.Result{Body: body}
}
