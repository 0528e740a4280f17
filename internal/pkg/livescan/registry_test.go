package livescan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrplanet/qrplanet/internal/pkg/livescan"
)

func TestRegistry_FanOut(t *testing.T) {
	t.Parallel()

	r := livescan.NewRegistry()
	a := r.Subscribe(4)
	b := r.Subscribe(4)
	defer r.Unsubscribe(a)
	defer r.Unsubscribe(b)

	ev := livescan.Event{ScanUUID: "scan_abc", QRCodeUUID: "qr-1", OwnerID: 7, Timestamp: time.Now()}
	r.Broadcast(ev)

	for _, sub := range []*livescan.Subscriber{a, b} {
		select {
		case got := <-sub.Events():
			assert.Equal(t, ev, got)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive broadcast event")
		}
	}
}

func TestRegistry_BroadcastNeverBlocks(t *testing.T) {
	t.Parallel()

	r := livescan.NewRegistry()
	slow := r.Subscribe(1)
	_ = slow

	done := make(chan struct{})
	go func() {
		// Buffer holds one event; the rest must not block the sender.
		for i := 0; i < 10; i++ {
			r.Broadcast(livescan.Event{ScanUUID: "scan_x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
}

func TestRegistry_PrunesFullSubscriber(t *testing.T) {
	t.Parallel()

	r := livescan.NewRegistry()
	dead := r.Subscribe(1)
	require.Equal(t, 1, r.Len())

	r.Broadcast(livescan.Event{ScanUUID: "first"})  // fills the buffer
	r.Broadcast(livescan.Event{ScanUUID: "second"}) // overflows, prunes

	assert.Equal(t, 0, r.Len())

	// Buffered event is still readable, then the channel closes.
	first, ok := <-dead.Events()
	require.True(t, ok)
	assert.Equal(t, "first", first.ScanUUID)
	_, ok = <-dead.Events()
	assert.False(t, ok)
}

func TestRegistry_UnsubscribeIdempotent(t *testing.T) {
	t.Parallel()

	r := livescan.NewRegistry()
	sub := r.Subscribe(1)

	r.Unsubscribe(sub)
	r.Unsubscribe(sub) // second call must not panic on a closed channel
	assert.Equal(t, 0, r.Len())
}
