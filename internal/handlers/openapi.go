package handlers

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

type actionRequest struct {
	Type    draft.ActionType `json:"type" required:"true" enum:"SET_PLAYERS,SET_TEAMS,START_DRAFT,DRAFT_PLAYER,SET_CURRENT_PICK,SET_CURRENT_ROUND,SET_SETTINGS,SET_SEARCH_QUERY,UNDO_LAST_PICK"`
	Payload any              `json:"payload,omitempty"`
}

type playersQuery struct {
	Q        string `query:"q" description:"Case-insensitive match on name, position or team."`
	Position string `query:"position" enum:"QB,RB,WR,TE,K,DEF"`
	Sort     string `query:"sort" enum:"rank,adp,projectedPoints" default:"rank"`
	Order    string `query:"order" enum:"asc,desc" default:"asc"`
	Limit    int    `query:"limit" minimum:"0"`
}

type idPath struct {
	ID string `path:"id"`
}

type sinceQuery struct {
	Since uint64 `query:"since" description:"Replay retained events newer than this version."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Draft Assistant API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Fantasy football draft state and player rankings.")

	type op struct {
		method, path, summary string
		req                   any
		resp                  any
		errs                  []int
	}

	ops := []op{
		{http.MethodGet, "/api/draft/state", "Current draft state", nil, StateResponse{}, nil},
		{http.MethodPost, "/api/draft/actions", "Dispatch an action (commissioner)", actionRequest{}, StateResponse{}, []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict}},
		{http.MethodPost, "/api/draft/pick", "Draft a player to the team on the clock", PickRequest{}, StateResponse{}, []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}},
		{http.MethodPost, "/api/draft/undo", "Undo the last pick", nil, StateResponse{}, []int{http.StatusConflict}},
		{http.MethodPost, "/api/draft/reset", "Reload rankings and start over (commissioner)", nil, LoadResponse{}, []int{http.StatusUnauthorized, http.StatusForbidden}},
		{http.MethodGet, "/api/players", "Search undrafted players", playersQuery{}, []models.Player{}, []int{http.StatusBadRequest}},
		{http.MethodGet, "/api/players/{id}/news", "Player news", idPath{}, NewsResponse{}, []int{http.StatusNotFound}},
		{http.MethodGet, "/api/injuries", "Injury updates by player id", nil, map[string]string{}, nil},
		{http.MethodGet, "/api/teams", "List teams", nil, []models.Team{}, nil},
		{http.MethodGet, "/api/teams/on-the-clock", "Team owning the current pick", nil, OnTheClockResponse{}, []int{http.StatusNotFound}},
		{http.MethodGet, "/api/teams/{id}", "Team with roster summary", idPath{}, TeamResponse{}, []int{http.StatusNotFound}},
		{http.MethodGet, "/api/rankings", "Ranked player board, live or fallback", nil, rankings.Result{}, nil},
		{http.MethodPost, "/api/rankings/cache/clear", "Drop cached rankings (commissioner)", nil, OKResponse{}, []int{http.StatusUnauthorized, http.StatusForbidden}},
	}

	for _, o := range ops {
		oc, _ := r.NewOperationContext(o.method, o.path)
		oc.SetSummary(o.summary)
		if o.req != nil {
			oc.AddReqStructure(o.req)
		}
		oc.AddRespStructure(o.resp, openapi.WithHTTPStatus(http.StatusOK))
		for _, status := range o.errs {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events for every applied draft transition.")
	getEvents.AddReqStructure(sinceQuery{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws")
	getWS.SetSummary("WebSocket draft channel (commissioner)")
	getWS.SetDescription("Send action envelopes, receive snapshots and events.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
