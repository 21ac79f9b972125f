package signal

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Signal announces that the remote wallet ledger changed. The amount is
// informational only, subscribers must still re-fetch authoritative state.
type Signal struct {
	Amount decimal.Decimal
}

// Listener receives published signals on the publisher's goroutine.
type Listener func(Signal)

type subscription struct {
	id       uint64
	listener Listener
}

// Bus is a process-wide publish/subscribe channel for wallet refresh
// signals. It decouples mutation surfaces from the views displaying ledger
// state: neither side holds a reference to the other.
//
// Publish delivers to the listeners subscribed at the time of the call,
// synchronously and in subscription order. There is no buffering, a listener
// subscribing after a publish never observes it.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers the listener and returns an unsubscribe func that
// removes exactly that listener. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish notifies current subscribers in subscription order. Listeners run
// outside the bus lock so they may subscribe or unsubscribe reentrantly.
func (b *Bus) Publish(sig Signal) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		sub.listener(sig)
	}
}

// ListenerCount reports the number of active subscriptions.
func (b *Bus) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
