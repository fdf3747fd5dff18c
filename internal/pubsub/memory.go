package pubsub

import (
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// DefaultReplaySize is how many events MemoryBus retains.
const DefaultReplaySize = 1000

// MemoryBus is an in-process stand-in for JetStream. It keeps the most
// recent events so late subscribers can catch up.
type MemoryBus struct {
	fanout
	messages    []Event
	maxMessages int
}

// NewMemoryBus creates a bus retaining up to maxMessages events; values
// below 1 use DefaultReplaySize.
func NewMemoryBus(maxMessages int) *MemoryBus {
	if maxMessages < 1 {
		maxMessages = DefaultReplaySize
	}
	logger.Info("Using in-memory event bus", "retain", maxMessages)
	return &MemoryBus{
		fanout:      newFanout("Memory bus", 100),
		messages:    make([]Event, 0),
		maxMessages: maxMessages,
	}
}

// Publish stores the event and delivers it to every subscriber.
func (b *MemoryBus) Publish(event Event) {
	b.mu.Lock()
	b.messages = append(b.messages, event)
	if len(b.messages) > b.maxMessages {
		b.messages = b.messages[len(b.messages)-b.maxMessages:]
	}
	b.mu.Unlock()

	b.deliver(event)
}

func (b *MemoryBus) Subscribe() chan Event { return b.subscribe() }

func (b *MemoryBus) Unsubscribe(ch chan Event) { b.unsubscribe(ch) }

// Replay returns up to the last count retained events, oldest first.
func (b *MemoryBus) Replay(count int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start := max(len(b.messages)-count, 0)
	out := make([]Event, len(b.messages)-start)
	copy(out, b.messages[start:])
	return out
}

// Since returns retained events with a version greater than version.
func (b *MemoryBus) Since(version uint64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, e := range b.messages {
		if e.Version > version {
			out = append(out, e)
		}
	}
	return out
}

// MessageCount returns the number of retained events.
func (b *MemoryBus) MessageCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.messages)
}

// SubscriberCount returns the number of active subscribers
func (b *MemoryBus) SubscriberCount() int { return b.count() }

// Close closes all subscriptions
func (b *MemoryBus) Close() {
	logger.Info("Memory bus: closing subscriptions", "active", b.count())
	b.closeAll()
}
