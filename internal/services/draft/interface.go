package draft

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lightthelamp/internal/services/draft Service

import "context"

// Service defines the interface for league drafts
type Service interface {
	// GetDraftState derives the full draft state for a league's game
	GetDraftState(ctx context.Context, input *GetDraftStateInput) (*GetDraftStateOutput, error)

	// CurrentTurn returns the participant due to pick
	CurrentTurn(ctx context.Context, input *CurrentTurnInput) (*CurrentTurnOutput, error)

	// IsComplete reports whether every participant has picked
	IsComplete(ctx context.Context, input *IsCompleteInput) (*IsCompleteOutput, error)

	// AttemptPick validates and records a pick. Picks for the same league and game are
	// serialized.
	AttemptPick(ctx context.Context, input *AttemptPickInput) (*AttemptPickOutput, error)

	// ListPicks returns a game's picks in the order they were made
	ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error)

	// JoinLeague adds a user to the end of the league's draft order
	JoinLeague(ctx context.Context, input *JoinLeagueInput) (*JoinLeagueOutput, error)

	// LeaveLeague removes a user. Their turns are skipped; picks already made stay.
	LeaveLeague(ctx context.Context, input *LeaveLeagueInput) (*LeaveLeagueOutput, error)

	// ListParticipants returns the league's members in draft order
	ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error)
}
