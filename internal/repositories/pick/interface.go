package pick

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lightthelamp/internal/repositories/pick Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

var (
	// ErrPlayerTaken is returned when the player already has a pick in the draft
	ErrPlayerTaken = errors.New("player already picked in this draft")

	// ErrParticipantHasPick is returned when the participant already picked in the draft
	ErrParticipantHasPick = errors.New("participant already picked in this draft")
)

// Repository defines the interface for the append-only pick log of each league's game
type Repository interface {
	// AppendPick atomically records a pick. It fails with ErrPlayerTaken or
	// ErrParticipantHasPick instead of overwriting anything.
	AppendPick(ctx context.Context, input *AppendPickInput) error

	// ListPicks returns the picks for a league's game in the order they were recorded
	ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error)
}

func validatePick(p *models.Pick) error {
	if p == nil {
		return errors.New("pick cannot be nil")
	}
	if p.ID == "" {
		return errors.New("pick ID cannot be empty")
	}
	if p.LeagueID == "" || p.GameID == "" {
		return errors.New("league ID and game ID cannot be empty")
	}
	if p.ParticipantID == "" || p.PlayerID == "" {
		return errors.New("participant ID and player ID cannot be empty")
	}
	return nil
}
