package draft

import (
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/common/clock"
	"github.com/KirkDiggler/lightthelamp/internal/common/keylock"
	"github.com/KirkDiggler/lightthelamp/internal/common/uuid"
	"github.com/KirkDiggler/lightthelamp/internal/events"
	"github.com/KirkDiggler/lightthelamp/internal/models"
	membershipRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/membership"
	pickRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/pick"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
)

// Config holds configuration for the draft service
type Config struct {
	// Repository dependencies
	MembershipRepo membershipRepo.Repository
	PickRepo       pickRepo.Repository

	// Service dependencies
	RosterService roster.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Publisher receives draft events. Optional.
	Publisher events.Publisher

	// Locks serializes picks per league game. Optional; a private locker is created when nil.
	Locks *keylock.Locker

	// LockTimeout bounds the wait for a draft held by another pick. Defaults to
	// DefaultLockTimeout.
	LockTimeout time.Duration
}

// GetDraftStateInput identifies a league's draft for a game
type GetDraftStateInput struct {
	LeagueID string
	GameID   string
}

// GetDraftStateOutput contains the derived draft state
type GetDraftStateOutput struct {
	State *models.DraftState
}

// CurrentTurnInput identifies a league's draft for a game
type CurrentTurnInput struct {
	LeagueID string
	GameID   string
}

// CurrentTurnOutput contains the participant due to pick
type CurrentTurnOutput struct {
	// ParticipantID is empty when the draft is complete
	ParticipantID string
	Complete      bool
}

// IsCompleteInput identifies a league's draft for a game
type IsCompleteInput struct {
	LeagueID string
	GameID   string
}

// IsCompleteOutput reports whether every participant has picked
type IsCompleteOutput struct {
	Complete bool
}

// AttemptPickInput contains parameters for making a pick
type AttemptPickInput struct {
	LeagueID      string
	GameID        string
	ParticipantID string
	PlayerID      string
}

// AttemptPickOutput contains the recorded pick and the draft state after it
type AttemptPickOutput struct {
	Pick  *models.Pick
	State *models.DraftState
}

// ListPicksInput identifies a league's draft for a game
type ListPicksInput struct {
	LeagueID string
	GameID   string
}

// ListPicksOutput contains the picks in the order they were made
type ListPicksOutput struct {
	Picks []*models.Pick
}

// JoinLeagueInput contains parameters for joining a league
type JoinLeagueInput struct {
	LeagueID    string
	UserID      string
	DisplayName string
}

// JoinLeagueOutput contains the new participant
type JoinLeagueOutput struct {
	Participant *models.Participant
}

// LeaveLeagueInput contains parameters for leaving a league
type LeaveLeagueInput struct {
	LeagueID string
	UserID   string
}

// LeaveLeagueOutput contains the result of leaving a league
type LeaveLeagueOutput struct {
	Success bool
}

// ListParticipantsInput identifies a league
type ListParticipantsInput struct {
	LeagueID string
}

// ListParticipantsOutput contains the league's members in draft order
type ListParticipantsOutput struct {
	Participants []*models.Participant
}
