package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/store"
)

// RankingsService is the ranking provider surface the API exposes.
type RankingsService interface {
	PlayerRankings(ctx context.Context) rankings.Result
	ClearCache()
	PlayerNews(ctx context.Context, playerID string) string
	InjuryUpdates(ctx context.Context) map[string]string
}

// APIHandlers contains all API handler methods
type APIHandlers struct {
	store    *store.Store
	rankings RankingsService
	bus      pubsub.Bus
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(s *store.Store, r RankingsService, bus pubsub.Bus) *APIHandlers {
	return &APIHandlers{store: s, rankings: r, bus: bus}
}

// StateResponse wraps a snapshot with the version it was taken at.
type StateResponse struct {
	Version uint64            `json:"version"`
	State   models.DraftState `json:"state"`
}

type PickRequest struct {
	PlayerID string `json:"playerId" required:"true"`
	Price    *int   `json:"price,omitempty"`
}

type LoadResponse struct {
	Origin  rankings.Origin `json:"origin"`
	Source  string          `json:"source"`
	Players int             `json:"players"`
}

type TeamResponse struct {
	Team    models.Team         `json:"team"`
	Summary draft.RosterSummary `json:"summary"`
}

type OnTheClockResponse struct {
	Team         models.Team `json:"team"`
	CurrentPick  int         `json:"currentPick"`
	CurrentRound int         `json:"currentRound"`
}

type NewsResponse struct {
	PlayerID string `json:"playerId"`
	News     string `json:"news"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func (h *APIHandlers) respondState(w http.ResponseWriter) {
	state, version := h.store.Snapshot()
	writeJSON(w, http.StatusOK, StateResponse{Version: version, State: state})
}

func (h *APIHandlers) respondErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

// GetDraftState returns the current draft state
func (h *APIHandlers) GetDraftState(w http.ResponseWriter, r *http.Request) {
	h.respondState(w)
}

// Dispatch applies an action envelope.
func (h *APIHandlers) Dispatch(w http.ResponseWriter, r *http.Request) {
	var env draft.Envelope
	if err := readJSON(r, &env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	action, err := env.Action()
	if err != nil {
		h.respondErr(w, err)
		return
	}

	state, version, err := h.store.Dispatch(r.Context(), action)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{Version: version, State: state})
}

// DraftPick drafts a player to the team on the clock.
func (h *APIHandlers) DraftPick(w http.ResponseWriter, r *http.Request) {
	var req PickRequest
	if err := readJSON(r, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "playerId is required")
		return
	}

	state, version, err := h.store.DraftNext(r.Context(), req.PlayerID, req.Price)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{Version: version, State: state})
}

// Undo reverts the most recent pick.
func (h *APIHandlers) Undo(w http.ResponseWriter, r *http.Request) {
	state, version, err := h.store.Dispatch(r.Context(), draft.UndoLastPick{})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{Version: version, State: state})
}

// ResetDraft reloads rankings and starts the draft over.
func (h *APIHandlers) ResetDraft(w http.ResponseWriter, r *http.Request) {
	logger.Info("Resetting draft")
	res, err := h.store.Reset(r.Context(), h.rankings)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoadResponse{Origin: res.Origin, Source: res.Source, Players: len(res.Players)})
}

// ListPlayers searches the undrafted board.
// Query parameters: q, position, sort (rank|adp|projectedPoints), order (asc|desc), limit.
func (h *APIHandlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := draft.Query{
		Text:       qs.Get("q"),
		Position:   models.Position(strings.ToUpper(qs.Get("position"))),
		SortBy:     draft.ParseSortField(qs.Get("sort")),
		Descending: strings.EqualFold(qs.Get("order"), "desc"),
	}
	if q.Position != "" && !q.Position.Valid() {
		writeError(w, http.StatusBadRequest, "unknown position "+string(q.Position))
		return
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		q.Limit = n
	}

	state, _ := h.store.Snapshot()
	writeJSON(w, http.StatusOK, draft.Search(state.Players, q))
}

// PlayerNews returns news for one player on the board.
func (h *APIHandlers) PlayerNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, _ := h.store.Snapshot()
	if state.PlayerIndex(id) < 0 {
		h.respondErr(w, draft.ErrPlayerNotFound)
		return
	}
	writeJSON(w, http.StatusOK, NewsResponse{PlayerID: id, News: h.rankings.PlayerNews(r.Context(), id)})
}

func (h *APIHandlers) Injuries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rankings.InjuryUpdates(r.Context()))
}

// ListTeams returns all teams
func (h *APIHandlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	state, _ := h.store.Snapshot()
	writeJSON(w, http.StatusOK, state.Teams)
}

// GetTeam returns one team with its roster summary.
func (h *APIHandlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	state, _ := h.store.Snapshot()
	i := state.TeamIndex(chi.URLParam(r, "id"))
	if i < 0 {
		h.respondErr(w, draft.ErrTeamNotFound)
		return
	}
	team := state.Teams[i]
	writeJSON(w, http.StatusOK, TeamResponse{Team: team, Summary: draft.Summarize(team)})
}

func (h *APIHandlers) OnTheClock(w http.ResponseWriter, r *http.Request) {
	state, _ := h.store.Snapshot()
	team, ok := draft.TeamOnClock(state)
	if !ok {
		writeError(w, http.StatusNotFound, store.ErrNoTeamOnClock.Error())
		return
	}
	writeJSON(w, http.StatusOK, OnTheClockResponse{Team: team, CurrentPick: state.CurrentPick, CurrentRound: state.CurrentRound})
}

// Rankings returns the ranked board from the provider, live or fallback.
func (h *APIHandlers) Rankings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rankings.PlayerRankings(r.Context()))
}

func (h *APIHandlers) ClearRankingsCache(w http.ResponseWriter, r *http.Request) {
	h.rankings.ClearCache()
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
