package pubsub

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// EmbeddedNATSPubSub runs a NATS server in-process. It gives development
// and tests a real JetStream without external infrastructure.
type EmbeddedNATSPubSub struct {
	*jetStream
	server *server.Server
}

// EmbeddedNATSOptions configures the embedded NATS server
type EmbeddedNATSOptions struct {
	Port       int    // 0 or -1 picks a random free port
	Subject    string
	StreamName string
	StoreDir   string // empty keeps the stream in memory
}

// DefaultEmbeddedNATSOptions returns sensible defaults for development
func DefaultEmbeddedNATSOptions() EmbeddedNATSOptions {
	return EmbeddedNATSOptions{
		Port:       -1,
		Subject:    "draft.events",
		StreamName: DefaultStreamName,
	}
}

// NewEmbeddedNATSPubSub creates a new embedded NATS server and pub/sub
func NewEmbeddedNATSPubSub(opts EmbeddedNATSOptions) (*EmbeddedNATSPubSub, error) {
	port := opts.Port
	if port == 0 {
		port = -1
	}

	serverOpts := &server.Options{
		Port:      port,
		JetStream: true,
		NoSigs:    true,
		StoreDir:  opts.StoreDir,
	}

	ns, err := server.NewServer(serverOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedded NATS server: %w", err)
	}
	ns.SetLogger(&natsLogger{}, false, false)

	go ns.Start()

	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("embedded NATS server failed to start within timeout")
	}

	logger.Info("Embedded NATS server started", "url", ns.ClientURL())

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("failed to connect to embedded NATS: %w", err)
	}

	streamName := opts.StreamName
	if streamName == "" {
		streamName = DefaultStreamName
	}
	storage := nats.MemoryStorage
	if opts.StoreDir != "" {
		storage = nats.FileStorage
	}

	core, err := newJetStream("Embedded NATS", nc, &nats.StreamConfig{
		Name:       streamName,
		Subjects:   []string{opts.Subject},
		Storage:    storage,
		MaxAge:     time.Hour,
		Duplicates: 2 * time.Minute,
	})
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, err
	}

	return &EmbeddedNATSPubSub{jetStream: core, server: ns}, nil
}

// ServerURL returns the client URL of the embedded server.
func (p *EmbeddedNATSPubSub) ServerURL() string {
	return p.server.ClientURL()
}

// Close shuts down the embedded NATS server
func (p *EmbeddedNATSPubSub) Close() {
	logger.Info("Shutting down embedded NATS server")
	p.close()
	if p.server != nil {
		p.server.Shutdown()
		p.server.WaitForShutdown()
	}
}

// natsLogger adapts our logger to the NATS server logger interface
type natsLogger struct{}

func (l *natsLogger) Noticef(format string, v ...any) {
	logger.Info(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Warnf(format string, v ...any) {
	logger.Warn(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Fatalf(format string, v ...any) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Errorf(format string, v ...any) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Debugf(format string, v ...any) {
	logger.Debug(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Tracef(format string, v ...any) {
	logger.Debug(fmt.Sprintf("[NATS TRACE] "+format, v...))
}
