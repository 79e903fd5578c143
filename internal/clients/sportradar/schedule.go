package sportradar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Season types accepted by the schedule endpoint
const (
	SeasonPreseason   = "PRE"
	SeasonRegular     = "REG"
	SeasonPostseason  = "PST"
	DefaultSeasonType = SeasonRegular
)

// Game statuses that mean the puck has not dropped yet
var upcomingStatuses = map[string]bool{
	"scheduled": true,
	"created":   true,
	"time-tbd":  true,
}

type Schedule struct {
	Season Season          `json:"season"`
	Games  []ScheduledGame `json:"games"`
}

type Season struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	Type string `json:"type"`
}

type Venue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScheduledGame is one game of the season schedule. Team names are full names here, e.g.
// "Detroit Red Wings".
type ScheduledGame struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Scheduled time.Time `json:"scheduled"`
	Home      Team      `json:"home"`
	Away      Team      `json:"away"`
	Venue     Venue     `json:"venue"`
}

// Upcoming reports whether the game has not started or finished
func (g *ScheduledGame) Upcoming() bool {
	return upcomingStatuses[g.Status]
}

// TeamMatching returns the team whose name contains name, and its opponent
func (g *ScheduledGame) TeamMatching(name string) (team, opponent *Team, ok bool) {
	return matchTeam(&g.Home, &g.Away, name)
}

// SeasonYear is the year a season starts in. NHL seasons begin in the autumn, so games before
// July belong to the previous year's season.
func SeasonYear(t time.Time) int {
	if t.Month() < time.July {
		return t.Year() - 1
	}
	return t.Year()
}

// GetSeasonSchedule retrieves every game of a season
func (c *Client) GetSeasonSchedule(ctx context.Context, year int, seasonType string) (*Schedule, error) {
	if seasonType == "" {
		seasonType = DefaultSeasonType
	}

	// v7/{language_code}/games/{season_year}/{season_type}/schedule.json
	endpoint := fmt.Sprintf("v7/%s/games/%d/%s/schedule.json", languageCodeEnglish, year, seasonType)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	var schedule Schedule
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	return &schedule, nil
}
