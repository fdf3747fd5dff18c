package models

import "maps"

// Position is a fantasy roster position
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// Positions lists every draftable position in display order.
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF}

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// Player represents a draftable NFL player
type Player struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	Rank            int      `json:"rank"`
	ADP             float64  `json:"adp"`
	Tier            int      `json:"tier"`
	Bye             int      `json:"bye"`
	ProjectedPoints int      `json:"projectedPoints"`
	IsDrafted       bool     `json:"isDrafted"`
	DraftedBy       string   `json:"draftedBy,omitempty"`
	DraftRound      int      `json:"draftRound,omitempty"`
	DraftPick       int      `json:"draftPick,omitempty"`
	AuctionPrice    *int     `json:"auctionPrice,omitempty"`
	ESPNID          string   `json:"espnId,omitempty"`
	News            string   `json:"news,omitempty"`
	InjuryStatus    string   `json:"injuryStatus,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Player) Clone() Player {
	if p.AuctionPrice != nil {
		price := *p.AuctionPrice
		p.AuctionPrice = &price
	}
	return p
}

// ClearDraft resets every draft-outcome field.
func (p *Player) ClearDraft() {
	p.IsDrafted = false
	p.DraftedBy = ""
	p.DraftRound = 0
	p.DraftPick = 0
	p.AuctionPrice = nil
}

// Team represents a fantasy team in the draft
type Team struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Owner           string   `json:"owner"`
	Players         []Player `json:"players"`
	Budget          int      `json:"budget"`
	RemainingBudget int      `json:"remainingBudget"`
	Picks           []int    `json:"picks"`
}

// Clone returns a deep copy of t.
func (t Team) Clone() Team {
	t.Players = ClonePlayers(t.Players)
	if t.Picks != nil {
		t.Picks = append([]int(nil), t.Picks...)
	}
	return t
}

// OwnsPick reports whether the global pick number belongs to this team.
func (t Team) OwnsPick(pick int) bool {
	for _, p := range t.Picks {
		if p == pick {
			return true
		}
	}
	return false
}

// DraftSettings is the league configuration for a session
type DraftSettings struct {
	LeagueSize int            `json:"leagueSize"`
	RosterSize int            `json:"rosterSize"`
	IsAuction  bool           `json:"isAuction"`
	Budget     int            `json:"budget"`
	Positions  map[string]int `json:"positions"`
}

// DefaultSettings returns a 12-team, 16-round snake league with a $200 budget.
func DefaultSettings() DraftSettings {
	return DraftSettings{
		LeagueSize: 12,
		RosterSize: 16,
		IsAuction:  false,
		Budget:     200,
		Positions: map[string]int{
			"QB":    1,
			"RB":    2,
			"WR":    2,
			"TE":    1,
			"FLEX":  1,
			"K":     1,
			"DEF":   1,
			"BENCH": 7,
		},
	}
}

// Clone returns a deep copy of s.
func (s DraftSettings) Clone() DraftSettings {
	if s.Positions != nil {
		s.Positions = maps.Clone(s.Positions)
	}
	return s
}

// PickRecord is one entry of the draft log, enough to reverse the pick.
type PickRecord struct {
	PlayerID  string `json:"playerId"`
	TeamID    string `json:"teamId"`
	Round     int    `json:"round"`
	Pick      int    `json:"pick"`
	Price     *int   `json:"price,omitempty"`
	PrevPick  int    `json:"prevPick"`
	PrevRound int    `json:"prevRound"`
}

// DraftState represents the complete state of the draft
type DraftState struct {
	Players         []Player      `json:"players"`
	Teams           []Team        `json:"teams"`
	CurrentPick     int           `json:"currentPick"`
	CurrentRound    int           `json:"currentRound"`
	IsDraftStarted  bool          `json:"isDraftStarted"`
	Settings        DraftSettings `json:"settings"`
	SearchQuery     string        `json:"searchQuery"`
	FilteredPlayers []Player      `json:"filteredPlayers"`
	History         []PickRecord  `json:"history"`
}

// NewDraftState returns an empty state at pick 1, round 1.
func NewDraftState(settings DraftSettings) DraftState {
	return DraftState{
		Players:         []Player{},
		Teams:           []Team{},
		CurrentPick:     1,
		CurrentRound:    1,
		Settings:        settings.Clone(),
		FilteredPlayers: []Player{},
		History:         []PickRecord{},
	}
}

// Clone returns a deep copy of s.
func (s DraftState) Clone() DraftState {
	s.Players = ClonePlayers(s.Players)
	s.FilteredPlayers = ClonePlayers(s.FilteredPlayers)
	if s.Teams != nil {
		teams := make([]Team, len(s.Teams))
		for i, t := range s.Teams {
			teams[i] = t.Clone()
		}
		s.Teams = teams
	}
	if s.History != nil {
		history := make([]PickRecord, len(s.History))
		for i, h := range s.History {
			if h.Price != nil {
				price := *h.Price
				h.Price = &price
			}
			history[i] = h
		}
		s.History = history
	}
	s.Settings = s.Settings.Clone()
	return s
}

// PlayerIndex returns the index of the player with id, or -1.
func (s *DraftState) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// TeamIndex returns the index of the team with id, or -1.
func (s *DraftState) TeamIndex(id string) int {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return i
		}
	}
	return -1
}

// DraftedCount returns how many players are marked drafted.
func (s *DraftState) DraftedCount() int {
	n := 0
	for _, p := range s.Players {
		if p.IsDrafted {
			n++
		}
	}
	return n
}

// ClonePlayers deep-copies a player slice, preserving nil.
func ClonePlayers(players []Player) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
