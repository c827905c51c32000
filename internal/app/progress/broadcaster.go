// Package progress provides the progress reporter that fans session
// snapshots out to UI and notification collaborators.
package progress

import (
	"sync"

	"github.com/google/uuid"

	"github.com/practicebox/practicebox/internal/app/player"
)

// Update is a sequence-numbered snapshot delivered to subscribers.
type Update struct {
	SequenceNo uint64
	Snapshot   player.Snapshot
}

// subscription represents a subscriber's channel.
type subscription struct {
	id string
	ch chan Update
}

// Broadcaster implements player.Reporter by fanning snapshots out to
// subscriber channels. Delivery is non-blocking: a subscriber that cannot
// keep up drops updates rather than stalling the engine.
type Broadcaster struct {
	mu            sync.Mutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	closed        bool
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe registers a new subscriber and returns its subscription ID and
// update channel. The buffer size bounds how many updates a slow subscriber
// can lag behind before drops occur.
func (b *Broadcaster) Subscribe(buffer int) (string, <-chan Update) {
	if buffer <= 0 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	sub := &subscription{
		id: id,
		ch: make(chan Update, buffer),
	}
	b.subscriptions[id] = sub
	return id, sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subscriptions[subscriptionID]
	if !ok {
		return
	}
	delete(b.subscriptions, subscriptionID)
	close(sub.ch)
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscriptions)
}

// Report implements player.Reporter. Each snapshot gets the next sequence
// number and is offered to every subscriber without blocking.
func (b *Broadcaster) Report(s player.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.sequenceNo++
	u := Update{
		SequenceNo: b.sequenceNo,
		Snapshot:   s,
	}

	for _, sub := range b.subscriptions {
		select {
		case sub.ch <- u:
		default:
			// Subscriber buffer full, drop the update
		}
	}
}

// Close removes all subscriptions and closes their channels. Reports after
// Close are dropped.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subscriptions {
		delete(b.subscriptions, id)
		close(sub.ch)
	}
}
