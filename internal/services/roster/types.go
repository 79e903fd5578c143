package roster

import (
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	rosterRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/roster"
)

const (
	// DefaultRosterTTL keeps live stats reasonably fresh
	DefaultRosterTTL = 5 * time.Minute

	// DefaultGameTTL is how long the current game descriptor is cached
	DefaultGameTTL = 15 * time.Minute
)

// Config holds configuration for the roster service
type Config struct {
	// Repository dependencies
	RosterRepo rosterRepo.Repository

	// Source the roster is loaded from on a cache miss
	Source Source

	// RosterTTL and GameTTL default when zero
	RosterTTL time.Duration
	GameTTL   time.Duration
}

// CurrentGameOutput contains the game open for drafting
type CurrentGameOutput struct {
	Game *models.Game
}

// GetRosterInput contains parameters for retrieving a roster
type GetRosterInput struct {
	GameID string
}

// GetRosterOutput contains a game's pickable players
type GetRosterOutput struct {
	GameID  string
	Players []*models.Player
}
