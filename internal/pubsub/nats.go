package pubsub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// DefaultStreamName is the JetStream stream holding draft events.
const DefaultStreamName = "DRAFT_EVENTS"

// jetStream is the publish/consume core shared by NATSPubSub and
// EmbeddedNATSPubSub.
type jetStream struct {
	fanout
	nc      *nats.Conn
	js      nats.JetStreamContext
	sub     *nats.Subscription
	subject string
}

func newJetStream(name string, nc *nats.Conn, cfg *nats.StreamConfig) (*jetStream, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(cfg.Name); err != nil {
		if _, err := js.AddStream(cfg); err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
		}
		logger.Info("JetStream stream created", "stream", cfg.Name, "subjects", cfg.Subjects)
	}

	p := &jetStream{
		fanout:  newFanout(name, 100),
		nc:      nc,
		js:      js,
		subject: cfg.Subjects[0],
	}

	// DeliverNew: a restarted instance only cares about live changes, its
	// state comes from the store, not from the event log.
	p.sub, err = js.Subscribe(p.subject, p.handle, nats.ManualAck(), nats.DeliverNew())
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", p.subject, err)
	}

	return p, nil
}

func (p *jetStream) handle(msg *nats.Msg) {
	var event Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal event from JetStream", "error", err)
		msg.Term()
		return
	}
	p.deliver(event)
	msg.Ack()
}

// Publish writes the event to JetStream. The event ID doubles as the
// JetStream message ID so retried publishes are deduplicated.
func (p *jetStream) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", "error", err, "type", event.Type)
		return
	}

	opts := []nats.PubOpt{}
	if event.ID != "" {
		opts = append(opts, nats.MsgId(event.ID))
	}
	if _, err := p.js.Publish(p.subject, data, opts...); err != nil {
		logger.Error("Failed to publish to NATS", "error", err, "subject", p.subject, "type", event.Type)
		return
	}

	logger.Debug("Published event to NATS", "type", event.Type, "subject", p.subject)
}

func (p *jetStream) Subscribe() chan Event { return p.subscribe() }

func (p *jetStream) Unsubscribe(ch chan Event) { p.unsubscribe(ch) }

// SubscriberCount returns the number of active local subscribers
func (p *jetStream) SubscriberCount() int { return p.count() }

func (p *jetStream) close() {
	if p.sub != nil {
		p.sub.Unsubscribe()
	}
	p.closeAll()
	if p.nc != nil {
		p.nc.Close()
	}
}

// NATSPubSub implements pub/sub using an external NATS JetStream server
type NATSPubSub struct {
	*jetStream
}

// NewNATSPubSub connects to natsURL and ensures a file-backed stream exists
// for subject.
func NewNATSPubSub(natsURL, subject string) (*NATSPubSub, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("ff-draft-assistant"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	core, err := newJetStream("NATS", nc, &nats.StreamConfig{
		Name:       DefaultStreamName,
		Subjects:   []string{subject},
		Storage:    nats.FileStorage,
		Duplicates: 2 * time.Minute,
	})
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &NATSPubSub{jetStream: core}, nil
}

// Close closes the NATS connection
func (p *NATSPubSub) Close() {
	p.close()
}
