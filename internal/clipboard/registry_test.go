package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasteworks/clipstream/pkg/types"
)

func TestRegistryBroadcastFansOutToAllSubscribers(t *testing.T) {
	reg := NewRegistry(nil)

	chans := make([]chan types.Result, 3)
	for i := range chans {
		chans[i] = make(chan types.Result, 1)
		reg.Register(types.StreamID(i+1), chans[i])
	}

	want := types.Result{Body: types.PlainText{Text: "hello"}}
	reg.Broadcast(want)

	for i, ch := range chans {
		select {
		case got := <-ch:
			assert.Equal(t, want, got, "subscriber %d", i)
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestRegistryFullChannelIsSkippedNotRemoved(t *testing.T) {
	reg := NewRegistry(nil)

	full := make(chan types.Result, 1)
	full <- types.Result{Body: types.PlainText{Text: "stale"}}
	healthy := make(chan types.Result, 1)

	reg.Register(1, full)
	reg.Register(2, healthy)

	reg.Broadcast(types.Result{Body: types.PlainText{Text: "fresh"}})

	// The healthy subscriber still gets the event.
	select {
	case got := <-healthy:
		assert.Equal(t, types.PlainText{Text: "fresh"}, got.Body)
	default:
		t.Fatal("healthy subscriber received nothing")
	}

	// The full subscriber kept its stale event and its registration.
	assert.Equal(t, types.Result{Body: types.PlainText{Text: "stale"}}, <-full)
	assert.Equal(t, 2, reg.Subscribers())

	// It catches the next event now that it has capacity again.
	reg.Broadcast(types.Result{Body: types.PlainText{Text: "later"}})
	assert.Equal(t, types.PlainText{Text: "later"}, (<-full).Body)
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	reg := NewRegistry(nil)

	ch := make(chan types.Result, 1)
	reg.Register(7, ch)

	reg.Unregister(7)
	reg.Unregister(7)
	reg.Unregister(99) // never registered

	_, open := <-ch
	assert.False(t, open, "channel should be closed after unregister")
	assert.Equal(t, 0, reg.Subscribers())
}

func TestRegistryShutdownClosesAllAndRejectsNew(t *testing.T) {
	reg := NewRegistry(nil)

	a := make(chan types.Result, 1)
	b := make(chan types.Result, 1)
	reg.Register(1, a)
	reg.Register(2, b)

	reg.Shutdown()
	reg.Shutdown() // idempotent

	for _, ch := range []chan types.Result{a, b} {
		_, open := <-ch
		require.False(t, open)
	}

	// Registration after shutdown ends the stream immediately.
	late := make(chan types.Result, 1)
	reg.Register(3, late)
	_, open := <-late
	assert.False(t, open)

	// Broadcast after shutdown is a no-op.
	reg.Broadcast(types.Result{Body: types.PlainText{Text: "ignored"}})
	assert.Equal(t, 0, reg.Subscribers())
}
