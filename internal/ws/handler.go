package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/store"
)

// ServerMessage is everything the server sends over the socket.
type ServerMessage struct {
	Type    string             `json:"type"`
	Version uint64             `json:"version,omitempty"`
	State   *models.DraftState `json:"state,omitempty"`
	Event   *pubsub.Event      `json:"event,omitempty"`
	Error   string             `json:"error,omitempty"`
}

const (
	TypeSnapshot = "StateSnapshot"
	TypeEvent    = "Event"
	TypeError    = "Error"
)

const writeTimeout = 3 * time.Second

// Handler upgrades to a WebSocket. Clients send action envelopes and get a
// snapshot on connect, then every event followed by a fresh snapshot.
func Handler(s *store.Store, bus pubsub.Bus, opts *websocket.AcceptOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			logger.Warn("WebSocket accept failed", "error", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		send := func(msg ServerMessage) error {
			payload, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			defer wcancel()
			return conn.Write(wctx, websocket.MessageText, payload)
		}
		snapshot := func() error {
			state, version := s.Snapshot()
			return send(ServerMessage{Type: TypeSnapshot, Version: version, State: &state})
		}

		events := bus.Subscribe()
		defer bus.Unsubscribe(events)

		if err := snapshot(); err != nil {
			return
		}

		// Writer goroutine
		go func() {
			for {
				select {
				case e, ok := <-events:
					if !ok {
						cancel()
						return
					}
					if send(ServerMessage{Type: TypeEvent, Version: e.Version, Event: &e}) != nil || snapshot() != nil {
						cancel()
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					logger.Debug("WebSocket read ended", "error", err)
				}
				return
			}

			action, err := draft.Decode(data)
			if err != nil {
				_ = send(ServerMessage{Type: TypeError, Error: err.Error()})
				continue
			}
			if _, _, err := s.Dispatch(ctx, action); err != nil {
				_ = send(ServerMessage{Type: TypeError, Error: err.Error()})
			}
		}
	}
}
