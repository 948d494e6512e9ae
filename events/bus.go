package events

import (
	"context"
	"sync"
)

// SessionExpired is emitted when the remote service rejects the active
// session. AccountID identifies the account that needs re-authentication;
// it is empty when no account was active.
type SessionExpired struct {
	AccountID string
}

// Bus fans session-expiry events out to subscribers.
//
// Delivery is at-most-once and best-effort: a subscriber that is not
// draining its channel misses events, and publishing gives no ordering
// guarantee relative to the caller that triggered the event receiving its
// own error.
type Bus struct {
	mu   sync.Mutex
	subs map[chan SessionExpired]struct{}
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan SessionExpired]struct{})}
}

// Subscribe registers a subscriber. The returned channel is closed and
// dropped when ctx ends.
func (b *Bus) Subscribe(ctx context.Context) <-chan SessionExpired {
	ch := make(chan SessionExpired, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish delivers the event to every subscriber that can take it right
// now. Subscribers with a full buffer are skipped.
func (b *Bus) Publish(ev SessionExpired) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
