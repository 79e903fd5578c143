package membership

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lightthelamp/internal/repositories/membership Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

var (
	// ErrAlreadyMember is returned when the user already belongs to the league
	ErrAlreadyMember = errors.New("user is already a member of this league")

	// ErrParticipantNotFound is returned when the user is not a member of the league
	ErrParticipantNotFound = errors.New("participant not found")
)

// Repository defines the interface for league membership persistence
type Repository interface {
	// AddParticipant joins a user to a league
	AddParticipant(ctx context.Context, input *AddParticipantInput) error

	// RemoveParticipant removes a user from a league
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error

	// GetParticipant retrieves one member of a league
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// ListParticipants returns a league's members ordered by join time, ties by ID
	ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error)
}

func validateParticipant(p *models.Participant) error {
	if p == nil {
		return errors.New("participant cannot be nil")
	}
	if p.ID == "" || p.LeagueID == "" {
		return errors.New("participant ID and league ID cannot be empty")
	}
	if p.JoinedAt.IsZero() {
		return errors.New("participant join time cannot be zero")
	}
	return nil
}
