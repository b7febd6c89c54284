// Package pubsub provides the in-process publish/subscribe channel used to
// broadcast currency-preference changes to every active consumer. Delivery is
// fire-and-forget: listeners registered after a broadcast do not receive it
// retroactively, and a slow listener drops messages rather than blocking the
// publisher.
package pubsub

import (
	"sync"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

const subscriberBuffer = 8

// Broker fans currency-change events out to all current subscribers.
// The zero value is not usable; call NewBroker.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan domain.CurrencyChange
	closed bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan domain.CurrencyChange)}
}

// Subscribe registers a listener and returns its channel plus an unsubscribe
// function. Unsubscribe closes the channel and is safe to call more than
// once; callers tie it to the consumer's lifetime to avoid leaked listeners.
func (b *Broker) Subscribe() (<-chan domain.CurrencyChange, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan domain.CurrencyChange, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, unsubscribe
}

// Publish delivers change to every current subscriber. Subscribers whose
// buffers are full are skipped; the persisted preference is the source of
// truth, the broadcast is only a nudge.
func (b *Broker) Publish(change domain.CurrencyChange) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// Close shuts every subscription down. Further publishes are no-ops and
// further subscriptions return closed channels.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
