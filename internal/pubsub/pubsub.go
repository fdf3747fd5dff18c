package pubsub

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// Event is a draft change notification. Version is the store version the
// change produced; ID lets brokers drop redeliveries.
type Event struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Version uint64         `json:"version,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	TS      time.Time      `json:"ts"`
}

// NewEvent stamps a fresh ID and timestamp.
func NewEvent(eventType string, version uint64, payload map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Version: version,
		Payload: payload,
		TS:      time.Now().UTC(),
	}
}

// Bus is what the store publishes to and what streaming endpoints read from.
type Bus interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// Upstream is an interface for upstream publishers (e.g., NATS)
type Upstream interface {
	Bus
}

// fanout is the subscriber registry shared by every bus implementation.
type fanout struct {
	mu          sync.RWMutex
	subscribers []chan Event
	buffer      int
	name        string
}

func newFanout(name string, buffer int) fanout {
	return fanout{subscribers: []chan Event{}, buffer: buffer, name: name}
}

func (f *fanout) subscribe() chan Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan Event, f.buffer)
	f.subscribers = append(f.subscribers, ch)
	logger.Debug(f.name+": subscriber added", "totalSubscribers", len(f.subscribers))
	return ch
}

func (f *fanout) unsubscribe(ch chan Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, sub := range f.subscribers {
		if sub == ch {
			close(ch)
			f.subscribers = append(f.subscribers[:i], f.subscribers[i+1:]...)
			break
		}
	}
}

// deliver never blocks; a full subscriber misses the event. Sends happen
// under the read lock so unsubscribe cannot close a channel mid-send.
func (f *fanout) deliver(event Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subscribers {
		select {
		case ch <- event:
		default:
			logger.Warn(f.name+": skipping slow subscriber", "type", event.Type)
		}
	}
}

func (f *fanout) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subscribers {
		close(sub)
	}
	f.subscribers = nil
}

func (f *fanout) count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// PubSub is the in-process bus, optionally bridged to an upstream broker.
type PubSub struct {
	fanout
	upstream Upstream
}

// New creates a new PubSub instance
func New() *PubSub {
	return &PubSub{fanout: newFanout("PubSub", 10)}
}

// NewWithUpstream creates a PubSub whose Publish goes through upstream.
// Everything upstream broadcasts, including this instance's own events,
// is forwarded to local subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		fanout:   newFanout("PubSub", 10),
		upstream: upstream,
	}

	ch := upstream.Subscribe()
	go func() {
		for event := range ch {
			ps.deliver(event)
		}
		logger.Debug("PubSub: upstream channel closed")
	}()

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event { return ps.subscribe() }

// Unsubscribe removes a subscriber and closes its channel.
func (ps *PubSub) Unsubscribe(ch chan Event) { ps.unsubscribe(ch) }

// Publish sends an event to all subscribers
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		ps.upstream.Publish(event)
		return
	}
	ps.deliver(event)
}

// SubscriberCount returns the number of local subscribers.
func (ps *PubSub) SubscriberCount() int { return ps.count() }
