package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/clients/sportradar"
	"github.com/KirkDiggler/lightthelamp/internal/common/clock"
	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// DefaultTeam is matched against the boxscore team names
const DefaultTeam = "detroit"

// DefaultScheduleWindow is how far ahead the next game is looked for
const DefaultScheduleWindow = 30 * 24 * time.Hour

// SportradarAPI is the part of the Sportradar client the source needs
type SportradarAPI interface {
	GetBoxscore(ctx context.Context, gameID string) (*sportradar.Boxscore, error)
	GetSeasonSchedule(ctx context.Context, year int, seasonType string) (*sportradar.Schedule, error)
	GetTeamProfile(ctx context.Context, teamID string) (*sportradar.TeamProfile, error)
}

// SportradarSourceConfig holds configuration for the Sportradar source
type SportradarSourceConfig struct {
	Client SportradarAPI
	Clock  clock.Clock

	// GameID pins the current game. When empty the next scheduled game for Team is used.
	GameID string

	// Team is matched case-insensitively against "Market Name"
	Team string

	// SeasonType is PRE, REG or PST. Defaults to REG.
	SeasonType string

	// ScheduleWindow defaults to DefaultScheduleWindow
	ScheduleWindow time.Duration
}

// sportradarSource loads games from the season schedule and rosters from live boxscores
type sportradarSource struct {
	client     SportradarAPI
	clock      clock.Clock
	gameID     string
	team       string
	seasonType string
	window     time.Duration
}

// NewSportradarSource creates a Source backed by the Sportradar NHL API
func NewSportradarSource(cfg *SportradarSourceConfig) (*sportradarSource, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Client == nil {
		return nil, ErrNilSportradar
	}

	team := strings.TrimSpace(cfg.Team)
	if team == "" {
		team = DefaultTeam
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	seasonType := cfg.SeasonType
	if seasonType == "" {
		seasonType = sportradar.DefaultSeasonType
	}
	window := cfg.ScheduleWindow
	if window <= 0 {
		window = DefaultScheduleWindow
	}

	return &sportradarSource{
		client:     cfg.Client,
		clock:      clk,
		gameID:     cfg.GameID,
		team:       team,
		seasonType: seasonType,
		window:     window,
	}, nil
}

func (s *sportradarSource) Name() string {
	return "sportradar"
}

func (s *sportradarSource) CurrentGame(ctx context.Context) (*models.Game, error) {
	if s.gameID != "" {
		return s.pinnedGame(ctx)
	}
	return s.nextScheduledGame(ctx)
}

func (s *sportradarSource) pinnedGame(ctx context.Context) (*models.Game, error) {
	boxscore, err := s.client.GetBoxscore(ctx, s.gameID)
	if err != nil {
		return nil, classify(err)
	}

	_, opponent, ok := boxscore.TeamMatching(s.team)
	if !ok {
		return nil, ErrTeamNotInGame
	}

	return &models.Game{
		ID:       s.gameID,
		Opponent: opponent.FullName(),
		Status:   models.GameStatus(boxscore.Status),
		StartsAt: boxscore.Scheduled,
		Source:   s.Name(),
	}, nil
}

// nextScheduledGame is the team's earliest game that has not started, from the start of today
// until the end of the window
func (s *sportradarSource) nextScheduledGame(ctx context.Context) (*models.Game, error) {
	now := s.clock.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := now.Add(s.window)

	schedule, err := s.client.GetSeasonSchedule(ctx, sportradar.SeasonYear(now), s.seasonType)
	if err != nil {
		return nil, err
	}

	var (
		next     *sportradar.ScheduledGame
		opponent *sportradar.Team
	)
	for i := range schedule.Games {
		g := &schedule.Games[i]
		if !g.Upcoming() || g.Scheduled.Before(from) || g.Scheduled.After(until) {
			continue
		}
		_, opp, ok := g.TeamMatching(s.team)
		if !ok {
			continue
		}
		if next == nil || g.Scheduled.Before(next.Scheduled) {
			next, opponent = g, opp
		}
	}
	if next == nil {
		return nil, fmt.Errorf("%w: %s within %s", ErrNoUpcomingGame, s.team, s.window)
	}

	return &models.Game{
		ID:       next.ID,
		Opponent: opponent.FullName(),
		Status:   models.GameStatus(next.Status),
		StartsAt: next.Scheduled,
		Source:   s.Name(),
	}, nil
}

// Roster reads the team's players from the boxscore. Before puck drop the boxscore has no
// players, so the team's active roster is used instead.
func (s *sportradarSource) Roster(ctx context.Context, gameID string) ([]*models.Player, error) {
	boxscore, err := s.client.GetBoxscore(ctx, gameID)
	if err != nil {
		return nil, classify(err)
	}

	team, _, ok := boxscore.TeamMatching(s.team)
	if !ok {
		return nil, ErrTeamNotInGame
	}

	if len(team.Players) == 0 && team.ID != "" {
		return s.activeRoster(ctx, team.ID)
	}

	players := make([]*models.Player, 0, len(team.Players))
	for _, p := range team.Players {
		player := &models.Player{
			ID:       p.ID,
			Name:     p.FullName,
			Number:   int(p.JerseyNumber),
			Position: p.Position,
		}
		if st := p.Statistics; st != nil {
			player.Stats = &models.PlayerStats{
				Goals:        st.Goals,
				Assists:      st.Assists,
				Points:       st.Goals + st.Assists,
				Shots:        st.Shots,
				Hits:         st.Hits,
				Blocks:       st.Blocks,
				Saves:        st.Saves,
				ShotsAgainst: st.ShotsAgainst,
			}
		}
		players = append(players, player)
	}

	return players, nil
}

func (s *sportradarSource) activeRoster(ctx context.Context, teamID string) ([]*models.Player, error) {
	profile, err := s.client.GetTeamProfile(ctx, teamID)
	if err != nil {
		return nil, classify(err)
	}

	players := make([]*models.Player, 0, len(profile.Players))
	for _, p := range profile.Players {
		if p.Status != "" && p.Status != sportradar.ActivePlayerStatus {
			continue
		}
		players = append(players, &models.Player{
			ID:       p.ID,
			Name:     p.FullName,
			Number:   int(p.JerseyNumber),
			Position: p.Position,
		})
	}

	return players, nil
}

// classify marks requests Sportradar will never accept as an unknown game
func classify(err error) error {
	var statusErr *sportradar.StatusError
	if errors.As(err, &statusErr) && statusErr.Rejected() {
		return fmt.Errorf("%w: %w", ErrUnknownGame, err)
	}
	return err
}
