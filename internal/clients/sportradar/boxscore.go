package sportradar

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Boxscore is the subset of the game boxscore response the draft needs
type Boxscore struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Scheduled time.Time `json:"scheduled"`
	Home      Team      `json:"home"`
	Away      Team      `json:"away"`
}

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Market  string   `json:"market"`
	Alias   string   `json:"alias"`
	Players []Player `json:"players"`
}

// FullName is "Market Name", e.g. Detroit Red Wings
func (t Team) FullName() string {
	return strings.TrimSpace(t.Market + " " + t.Name)
}

type Player struct {
	ID           string       `json:"id"`
	FullName     string       `json:"full_name"`
	JerseyNumber JerseyNumber `json:"jersey_number"`
	Position     string       `json:"position"`
	Statistics   *Statistics  `json:"statistics,omitempty"`
}

type Statistics struct {
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	Shots        int `json:"shots"`
	Hits         int `json:"hits"`
	Blocks       int `json:"blocks"`
	Saves        int `json:"saves"`
	ShotsAgainst int `json:"shots_against"`
}

// JerseyNumber accepts both "71" and 71
type JerseyNumber int

func (n *JerseyNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid jersey number %q: %w", s, err)
	}
	*n = JerseyNumber(v)
	return nil
}

// TeamMatching returns the team whose name contains name, and its opponent
func (b *Boxscore) TeamMatching(name string) (team, opponent *Team, ok bool) {
	return matchTeam(&b.Home, &b.Away, name)
}

func matchTeam(home, away *Team, name string) (team, opponent *Team, ok bool) {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(strings.ToLower(home.FullName()), name):
		return home, away, true
	case strings.Contains(strings.ToLower(away.FullName()), name):
		return away, home, true
	}
	return nil, nil, false
}

// GetBoxscore retrieves the boxscore for a game
func (c *Client) GetBoxscore(ctx context.Context, gameID string) (*Boxscore, error) {
	// v7/{language_code}/games/{game_id}/boxscore.json
	endpoint := fmt.Sprintf("v7/%s/games/%s/boxscore.json", languageCodeEnglish, gameID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxscore: %w", err)
	}

	var boxscore Boxscore
	if err := json.Unmarshal(body, &boxscore); err != nil {
		return nil, fmt.Errorf("failed to unmarshal boxscore: %w", err)
	}

	return &boxscore, nil
}
