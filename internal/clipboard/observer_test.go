package clipboard

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasteworks/clipstream/internal/platform"
	"github.com/pasteworks/clipstream/pkg/types"
)

func startObserver(t *testing.T, provider platform.Provider, stop *atomic.Bool) (*Registry, chan types.Result, chan struct{}) {
	t.Helper()

	reg := NewRegistry(nil)
	sub := make(chan types.Result, 8)
	reg.Register(1, sub)

	obs := NewObserver(provider, NewClassifier(ClassifierOptions{}, nil), time.Millisecond, stop, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		obs.Run(reg)
	}()
	return reg, sub, done
}

func recvResult(t *testing.T, ch <-chan types.Result) types.Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a clipboard result")
		return types.Result{}
	}
}

func TestObserverDeliversChangesAndKeepsRunning(t *testing.T) {
	provider := newFakeProvider()
	stop := &atomic.Bool{}
	_, sub, done := startObserver(t, provider, stop)

	provider.push(&fakeSession{formats: map[string][]byte{
		platform.FormatText: []byte("first"),
	}})
	got := recvResult(t, sub)
	require.NoError(t, got.Err)
	assert.Equal(t, types.PlainText{Text: "first"}, got.Body)

	provider.push(&fakeSession{formats: map[string][]byte{
		platform.FormatText: []byte("second"),
	}})
	got = recvResult(t, sub)
	require.NoError(t, got.Err)
	assert.Equal(t, types.PlainText{Text: "second"}, got.Body)

	stop.Store(true)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("observer did not stop")
	}
}

func TestObserverReportsPerEventErrorsAndContinues(t *testing.T) {
	provider := newFakeProvider()
	provider.openErr = errors.New("clipboard busy")
	stop := &atomic.Bool{}
	_, sub, done := startObserver(t, provider, stop)

	provider.push(&fakeSession{})
	got := recvResult(t, sub)
	var readErr *types.ReadError
	require.ErrorAs(t, got.Err, &readErr)

	// The loop survived the failed attempt.
	provider.mu.Lock()
	provider.openErr = nil
	provider.mu.Unlock()

	provider.push(&fakeSession{formats: map[string][]byte{
		platform.FormatText: []byte("recovered"),
	}})
	got = recvResult(t, sub)
	require.NoError(t, got.Err)
	assert.Equal(t, types.PlainText{Text: "recovered"}, got.Body)

	stop.Store(true)
	<-done
}

func TestObserverUnknownDataTypeIsNonFatal(t *testing.T) {
	provider := newFakeProvider()
	stop := &atomic.Bool{}
	_, sub, done := startObserver(t, provider, stop)

	provider.push(&fakeSession{})
	got := recvResult(t, sub)
	assert.ErrorIs(t, got.Err, types.ErrUnknownDataType)

	provider.push(&fakeSession{formats: map[string][]byte{
		platform.FormatText: []byte("still alive"),
	}})
	got = recvResult(t, sub)
	require.NoError(t, got.Err)

	stop.Store(true)
	<-done
}

func TestObserverFatalMonitorErrorEndsLoop(t *testing.T) {
	provider := newFakeProvider()
	stop := &atomic.Bool{}
	_, sub, done := startObserver(t, provider, stop)

	provider.pushFatal(errors.New("notification primitive broke"))

	got := recvResult(t, sub)
	var monErr *types.MonitorFailedError
	require.ErrorAs(t, got.Err, &monErr)

	// The loop ends on its own, without the stop flag.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("observer did not terminate after fatal monitor error")
	}
	assert.False(t, stop.Load())
}

func TestObserverStopsPromptlyWhenFlagSet(t *testing.T) {
	provider := newFakeProvider()
	stop := &atomic.Bool{}
	stop.Store(true)

	_, _, done := startObserver(t, provider, stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("observer ignored the stop flag")
	}
}
