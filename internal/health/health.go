package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Checker verifies that an infrastructure dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a ping function to a Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks map[string]Checker
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{checks: checks, logger: logger}
}

// Routes mounts /healthz (liveness, no dependency checks) and /readyz.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", h.live)
	r.Get("/readyz", h.ready)
	return r
}

type result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type response struct {
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]result `json:"checks,omitempty"`
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusOK, response{Status: "alive", Timestamp: time.Now().Unix()})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := response{
		Status:    "ready",
		Timestamp: time.Now().Unix(),
		Checks:    make(map[string]result, len(h.checks)),
	}
	status := http.StatusOK

	for name, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Error("health check failed", "name", name, "error", err)
			resp.Checks[name] = result{Status: "error", Error: err.Error()}
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = result{Status: "ok"}
	}

	write(w, status, resp)
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
