package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lightthelamp/internal/services/roster Service
//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/lightthelamp/internal/services/roster Source

import (
	"context"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// Service provides the pickable game and its roster
type Service interface {
	// CurrentGame returns the game currently open for drafting
	CurrentGame(ctx context.Context) (*CurrentGameOutput, error)

	// GetRoster returns the roster for a game. It is authoritative for pick validation.
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// Refresh reloads the current game and its roster from the source
	Refresh(ctx context.Context) error
}

// Source is where rosters come from. One source is configured per environment.
type Source interface {
	// Name identifies the source in logs and on game descriptors
	Name() string

	// CurrentGame describes the game currently open for drafting
	CurrentGame(ctx context.Context) (*models.Game, error)

	// Roster lists the pickable players for a game
	Roster(ctx context.Context, gameID string) ([]*models.Player, error)
}
