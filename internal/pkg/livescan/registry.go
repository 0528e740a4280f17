// Package livescan provides best-effort fan-out of scan events to live
// observers (dashboard widgets, in-app toasts). Delivery never blocks
// the scan path; an observer that cannot keep up is pruned silently.
package livescan

import (
	"sync"
	"time"
)

// Event is the notification emitted on every resolved scan.
type Event struct {
	ScanUUID   string    `json:"scan_id"`
	QRCodeUUID string    `json:"qr_id"`
	OwnerID    uint      `json:"user_id"`
	Device     string    `json:"device"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	Timestamp  time.Time `json:"timestamp"`
}

// Subscriber is a single registered observer handle.
type Subscriber struct {
	ch chan Event
}

// Events returns the subscriber's event stream. The channel is closed
// when the subscriber is unsubscribed or pruned.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Registry is a process-owned, thread-safe set of subscriber handles.
type Registry struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
}

func NewRegistry() *Registry {
	return &Registry{subscribers: make(map[*Subscriber]struct{})}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry instance.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Subscribe registers a new observer with the given buffer size.
func (r *Registry) Subscribe(buffer int) *Subscriber {
	if buffer < 1 {
		buffer = 1
	}
	sub := &Subscriber{ch: make(chan Event, buffer)}
	r.mu.Lock()
	r.subscribers[sub] = struct{}{}
	r.mu.Unlock()
	return sub
}

// Unsubscribe removes an observer and closes its stream. Safe to call
// for already-pruned subscribers.
func (r *Registry) Unsubscribe(sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscribers[sub]; ok {
		delete(r.subscribers, sub)
		close(sub.ch)
	}
}

// Broadcast delivers the event to every subscriber without blocking.
// A subscriber whose buffer is full counts as dead and is pruned.
func (r *Registry) Broadcast(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subscribers {
		select {
		case sub.ch <- ev:
		default:
			delete(r.subscribers, sub)
			close(sub.ch)
		}
	}
}

// Len returns the current number of subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
