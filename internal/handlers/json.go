package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/store"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps store and reducer errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, draft.ErrPlayerNotFound), errors.Is(err, draft.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, draft.ErrPlayerAlreadyDrafted),
		errors.Is(err, draft.ErrNothingToUndo),
		errors.Is(err, store.ErrNoTeamOnClock):
		return http.StatusConflict
	case errors.Is(err, draft.ErrUnknownAction), errors.Is(err, draft.ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
