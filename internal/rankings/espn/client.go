package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

const (
	DefaultBaseURL = "https://fantasy.espn.com/apis/v3/games/ffl"
	DefaultSeason  = "2024"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config configures the ESPN league-defaults client.
type Config struct {
	BaseURL string
	Season  string
	Timeout time.Duration
}

// Client fetches the default-league player board from ESPN.
type Client struct {
	baseURL string
	season  string
	http    *http.Client
}

// NewClient creates an ESPN client; empty fields use the defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Season == "" {
		cfg.Season = DefaultSeason
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		season:  cfg.Season,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "espn" }

// URL returns the player-info endpoint for the configured season.
func (c *Client) URL() string {
	return fmt.Sprintf("%s/seasons/%s/segments/0/leaguedefaults/3?view=kona_player_info", c.baseURL, c.season)
}

type response struct {
	Players []entry `json:"players"`
}

type entry struct {
	Player *player `json:"player"`
	Rank   float64 `json:"rank"`
}

type player struct {
	ID                int64   `json:"id"`
	FullName          string  `json:"fullName"`
	DefaultPositionID int     `json:"defaultPositionId"`
	ProTeamID         int     `json:"proTeamId"`
	ByeWeek           int     `json:"byeWeek"`
	Stats             []stats `json:"stats"`
}

type stats struct {
	Stats map[string]float64 `json:"stats"`
}

// FetchPlayers downloads and decodes the ranked player list.
func (c *Client) FetchPlayers(ctx context.Context) ([]rankings.SourcePlayer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("espn: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("espn: decode players: %w", err)
	}
	if payload.Players == nil {
		return nil, fmt.Errorf("espn: response has no players field")
	}

	out := make([]rankings.SourcePlayer, 0, len(payload.Players))
	for _, e := range payload.Players {
		if e.Player == nil {
			continue
		}
		p := e.Player
		sp := rankings.SourcePlayer{
			ID:           p.ID,
			FullName:     p.FullName,
			PositionCode: p.DefaultPositionID,
			TeamCode:     p.ProTeamID,
			Rank:         e.Rank,
			ByeWeek:      p.ByeWeek,
		}
		if len(p.Stats) > 0 {
			if v, ok := p.Stats[0].Stats["ptsPerGame"]; ok {
				sp.PointsPerGame = &v
			}
		}
		out = append(out, sp)
	}
	return out, nil
}
