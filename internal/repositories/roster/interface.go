package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lightthelamp/internal/repositories/roster Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

var (
	// ErrRosterNotFound is returned when no roster is cached for the game
	ErrRosterNotFound = errors.New("roster not found")

	// ErrGameNotFound is returned when no current game is cached
	ErrGameNotFound = errors.New("game not found")
)

// Repository caches game rosters and the current game descriptor
type Repository interface {
	// GetRoster retrieves the cached roster for a game
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// SaveRoster caches a roster for a game until the TTL expires
	SaveRoster(ctx context.Context, input *SaveRosterInput) error

	// GetCurrentGame retrieves the cached current game
	GetCurrentGame(ctx context.Context) (*models.Game, error)

	// SaveCurrentGame caches the current game until the TTL expires
	SaveCurrentGame(ctx context.Context, input *SaveCurrentGameInput) error
}
