package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	rosterRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/roster"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const currentGameFlight = "current-game"

// service implements the Service interface
type service struct {
	rosterRepo rosterRepo.Repository
	source     Source
	rosterTTL  time.Duration
	gameTTL    time.Duration

	// Concurrent cache misses share one source call
	flights singleflight.Group
	logger  zerolog.Logger
}

// New creates a new roster service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}
	if cfg.Source == nil {
		return nil, ErrNilSource
	}

	rosterTTL := cfg.RosterTTL
	if rosterTTL <= 0 {
		rosterTTL = DefaultRosterTTL
	}
	gameTTL := cfg.GameTTL
	if gameTTL <= 0 {
		gameTTL = DefaultGameTTL
	}

	return &service{
		rosterRepo: cfg.RosterRepo,
		source:     cfg.Source,
		rosterTTL:  rosterTTL,
		gameTTL:    gameTTL,
		logger:     log.With().Str("component", "roster").Str("source", cfg.Source.Name()).Logger(),
	}, nil
}

// CurrentGame returns the cached current game, loading it from the source on a miss
func (s *service) CurrentGame(ctx context.Context) (*CurrentGameOutput, error) {
	game, err := s.rosterRepo.GetCurrentGame(ctx)
	if err == nil {
		return &CurrentGameOutput{Game: game}, nil
	}
	if !errors.Is(err, rosterRepo.ErrGameNotFound) {
		s.logger.Warn().Err(err).Msg("Current game cache read failed, asking source")
	}

	v, err, _ := s.flights.Do(currentGameFlight, func() (any, error) {
		return s.loadCurrentGame(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &CurrentGameOutput{Game: v.(*models.Game)}, nil
}

// GetRoster returns the cached roster for a game, loading it from the source on a miss
func (s *service) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrEmptyGameID
	}

	cached, err := s.rosterRepo.GetRoster(ctx, &rosterRepo.GetRosterInput{GameID: input.GameID})
	if err == nil {
		return &GetRosterOutput{GameID: input.GameID, Players: cached.Players}, nil
	}
	if !errors.Is(err, rosterRepo.ErrRosterNotFound) {
		s.logger.Warn().Err(err).Str("game_id", input.GameID).Msg("Roster cache read failed, asking source")
	}

	v, err, _ := s.flights.Do("roster:"+input.GameID, func() (any, error) {
		return s.loadRoster(ctx, input.GameID)
	})
	if err != nil {
		return nil, err
	}

	return &GetRosterOutput{GameID: input.GameID, Players: v.([]*models.Player)}, nil
}

// Refresh reloads the current game and its roster. The cache keeps its previous contents when
// the source fails.
func (s *service) Refresh(ctx context.Context) error {
	game, err := s.loadCurrentGame(ctx)
	if err != nil {
		return err
	}

	players, err := s.loadRoster(ctx, game.ID)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("game_id", game.ID).
		Str("opponent", game.Opponent).
		Int("players", len(players)).
		Msg("Roster refreshed")

	return nil
}

func (s *service) loadCurrentGame(ctx context.Context) (*models.Game, error) {
	game, err := s.source.CurrentGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current game from %s: %w", s.source.Name(), err)
	}

	if err := s.rosterRepo.SaveCurrentGame(ctx, &rosterRepo.SaveCurrentGameInput{
		Game: game,
		TTL:  s.gameTTL,
	}); err != nil {
		s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("Failed to cache current game")
	}

	return game, nil
}

func (s *service) loadRoster(ctx context.Context, gameID string) ([]*models.Player, error) {
	players, err := s.source.Roster(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster from %s: %w", s.source.Name(), err)
	}
	if len(players) == 0 {
		return nil, ErrEmptyRoster
	}

	if err := s.rosterRepo.SaveRoster(ctx, &rosterRepo.SaveRosterInput{
		GameID:  gameID,
		Players: players,
		TTL:     s.rosterTTL,
	}); err != nil {
		s.logger.Warn().Err(err).Str("game_id", gameID).Msg("Failed to cache roster")
	}

	return players, nil
}
