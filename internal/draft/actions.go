package draft

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

// ActionType is the discriminator of a dispatched action.
type ActionType string

const (
	ActionSetPlayers      ActionType = "SET_PLAYERS"
	ActionSetTeams        ActionType = "SET_TEAMS"
	ActionStartDraft      ActionType = "START_DRAFT"
	ActionDraftPlayer     ActionType = "DRAFT_PLAYER"
	ActionSetCurrentPick  ActionType = "SET_CURRENT_PICK"
	ActionSetCurrentRound ActionType = "SET_CURRENT_ROUND"
	ActionSetSettings     ActionType = "SET_SETTINGS"
	ActionSetSearchQuery  ActionType = "SET_SEARCH_QUERY"
	ActionUndoLastPick    ActionType = "UNDO_LAST_PICK"
)

var (
	ErrUnknownAction  = errors.New("unknown action type")
	ErrInvalidPayload = errors.New("invalid action payload")
)

// Action is one of the closed set of store transitions.
type Action interface {
	Type() ActionType
}

type SetPlayers struct {
	Players []models.Player
}

type SetTeams struct {
	Teams []models.Team
}

type StartDraft struct{}

// DraftPlayer assigns a player to a team at the given round and pick.
// Price is only set for auction drafts.
type DraftPlayer struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Round    int    `json:"round"`
	Pick     int    `json:"pick"`
	Price    *int   `json:"price,omitempty"`
}

type SetCurrentPick struct {
	Pick int
}

type SetCurrentRound struct {
	Round int
}

type SetSettings struct {
	Settings models.DraftSettings
}

type SetSearchQuery struct {
	Query string
}

type UndoLastPick struct{}

func (SetPlayers) Type() ActionType      { return ActionSetPlayers }
func (SetTeams) Type() ActionType        { return ActionSetTeams }
func (StartDraft) Type() ActionType      { return ActionStartDraft }
func (DraftPlayer) Type() ActionType     { return ActionDraftPlayer }
func (SetCurrentPick) Type() ActionType  { return ActionSetCurrentPick }
func (SetCurrentRound) Type() ActionType { return ActionSetCurrentRound }
func (SetSettings) Type() ActionType     { return ActionSetSettings }
func (SetSearchQuery) Type() ActionType  { return ActionSetSearchQuery }
func (UndoLastPick) Type() ActionType    { return ActionUndoLastPick }

// Envelope is the wire form of an action: {"type": ..., "payload": ...}.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode parses a JSON envelope into a typed action.
func Decode(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return env.Action()
}

// Action converts the envelope into a typed action.
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case ActionSetPlayers:
		var players []models.Player
		if err := e.decode(&players, false); err != nil {
			return nil, err
		}
		return SetPlayers{Players: players}, nil
	case ActionSetTeams:
		var teams []models.Team
		if err := e.decode(&teams, false); err != nil {
			return nil, err
		}
		return SetTeams{Teams: teams}, nil
	case ActionStartDraft:
		return StartDraft{}, nil
	case ActionDraftPlayer:
		var a DraftPlayer
		if err := e.decode(&a, true); err != nil {
			return nil, err
		}
		return a, nil
	case ActionSetCurrentPick:
		var n int
		if err := e.decode(&n, true); err != nil {
			return nil, err
		}
		return SetCurrentPick{Pick: n}, nil
	case ActionSetCurrentRound:
		var n int
		if err := e.decode(&n, true); err != nil {
			return nil, err
		}
		return SetCurrentRound{Round: n}, nil
	case ActionSetSettings:
		var s models.DraftSettings
		if err := e.decode(&s, true); err != nil {
			return nil, err
		}
		return SetSettings{Settings: s}, nil
	case ActionSetSearchQuery:
		var q string
		if err := e.decode(&q, false); err != nil {
			return nil, err
		}
		return SetSearchQuery{Query: q}, nil
	case ActionUndoLastPick:
		return UndoLastPick{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
}

func (e Envelope) decode(v any, required bool) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		if required {
			return fmt.Errorf("%w: %s requires a payload", ErrInvalidPayload, e.Type)
		}
		return nil
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, e.Type, err)
	}
	return nil
}

// Encode returns the JSON envelope for a.
func Encode(a Action) ([]byte, error) {
	var payload any
	switch a := a.(type) {
	case SetPlayers:
		payload = a.Players
	case SetTeams:
		payload = a.Teams
	case StartDraft, UndoLastPick:
	case DraftPlayer:
		payload = a
	case SetCurrentPick:
		payload = a.Pick
	case SetCurrentRound:
		payload = a.Round
	case SetSettings:
		payload = a.Settings
	case SetSearchQuery:
		payload = a.Query
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}

	env := Envelope{Type: a.Type()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}
