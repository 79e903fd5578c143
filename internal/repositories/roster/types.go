package roster

import (
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// GetRosterInput contains parameters for retrieving a roster
type GetRosterInput struct {
	GameID string
}

// GetRosterOutput contains the cached roster
type GetRosterOutput struct {
	Players []*models.Player
}

// SaveRosterInput contains the roster to cache. A zero TTL never expires.
type SaveRosterInput struct {
	GameID  string
	Players []*models.Player
	TTL     time.Duration
}

// SaveCurrentGameInput contains the game to cache. A zero TTL never expires.
type SaveCurrentGameInput struct {
	Game *models.Game
	TTL  time.Duration
}
