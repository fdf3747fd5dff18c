package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
)

// KeepaliveInterval is how often an idle SSE stream gets a comment line.
var KeepaliveInterval = 30 * time.Second

// replayer is implemented by buses that retain recent events.
type replayer interface {
	Since(version uint64) []pubsub.Event
}

// EventsSSE streams draft events. With ?since=N, retained events newer than
// version N are sent first when the bus keeps history.
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(ch)

	send := func(e pubsub.Event) {
		data, _ := json.Marshal(e)
		if e.ID != "" {
			fmt.Fprintf(w, "id: %s\n", e.ID)
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
		flusher.Flush()
	}

	send(pubsub.Event{Type: "connected", Version: h.store.Version(), TS: time.Now().UTC()})

	var lastVersion uint64
	if v, err := strconv.ParseUint(r.URL.Query().Get("since"), 10, 64); err == nil {
		if rp, ok := h.bus.(replayer); ok {
			for _, e := range rp.Since(v) {
				send(e)
				lastVersion = e.Version
			}
		}
	}

	keepalive := time.NewTicker(KeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			// Already sent during replay.
			if event.Version != 0 && event.Version <= lastVersion {
				continue
			}
			send(event)
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-keepalive.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
