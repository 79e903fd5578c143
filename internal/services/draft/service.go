package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/common/clock"
	"github.com/KirkDiggler/lightthelamp/internal/common/keylock"
	"github.com/KirkDiggler/lightthelamp/internal/common/uuid"
	tracker "github.com/KirkDiggler/lightthelamp/internal/draft"
	"github.com/KirkDiggler/lightthelamp/internal/events"
	"github.com/KirkDiggler/lightthelamp/internal/models"
	membershipRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/membership"
	pickRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/pick"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	membershipRepo membershipRepo.Repository
	pickRepo       pickRepo.Repository
	rosterService  roster.Service
	publisher      events.Publisher
	clock          clock.Clock
	uuidGenerator  uuid.UUID
	locks          *keylock.Locker
	lockTimeout    time.Duration
	logger         zerolog.Logger
}

// DefaultLockTimeout bounds how long a pick waits behind another pick for the same draft
const DefaultLockTimeout = 5 * time.Second

// New creates a new draft service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.MembershipRepo == nil {
		return nil, ErrNilMembershipRepo
	}
	if cfg.PickRepo == nil {
		return nil, ErrNilPickRepo
	}
	if cfg.RosterService == nil {
		return nil, ErrNilRosterService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	locks := cfg.Locks
	if locks == nil {
		locks = keylock.New()
	}
	lockTimeout := cfg.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}

	return &service{
		membershipRepo: cfg.MembershipRepo,
		pickRepo:       cfg.PickRepo,
		rosterService:  cfg.RosterService,
		publisher:      publisher,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		locks:          locks,
		lockTimeout:    lockTimeout,
		logger:         log.With().Str("component", "draft").Logger(),
	}, nil
}

// draftKey length-prefixes the league id so ids containing separators cannot collide
func draftKey(leagueID, gameID string) string {
	return fmt.Sprintf("%d:%s:%s", len(leagueID), leagueID, gameID)
}

// GetDraftState derives the full draft state for a league's game
func (s *service) GetDraftState(ctx context.Context, input *GetDraftStateInput) (*GetDraftStateOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	state, err := s.loadState(ctx, input.LeagueID, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetDraftStateOutput{
		State: state,
	}, nil
}

// CurrentTurn returns the participant due to pick
func (s *service) CurrentTurn(ctx context.Context, input *CurrentTurnInput) (*CurrentTurnOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	participants, picks, err := s.loadDraft(ctx, input.LeagueID, input.GameID)
	if err != nil {
		return nil, err
	}

	participantID, ok := tracker.CurrentTurn(participants, picks, input.GameID)
	return &CurrentTurnOutput{
		ParticipantID: participantID,
		Complete:      !ok,
	}, nil
}

// IsComplete reports whether every participant has picked
func (s *service) IsComplete(ctx context.Context, input *IsCompleteInput) (*IsCompleteOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	participants, picks, err := s.loadDraft(ctx, input.LeagueID, input.GameID)
	if err != nil {
		return nil, err
	}

	return &IsCompleteOutput{
		Complete: tracker.IsComplete(participants, picks, input.GameID),
	}, nil
}

// AttemptPick validates a pick against the current turn, the roster and the picks so far, then
// records it. Only one pick per league game is evaluated at a time in this process; the pick
// store rejects conflicting picks from other processes.
func (s *service) AttemptPick(ctx context.Context, input *AttemptPickInput) (*AttemptPickOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" || input.ParticipantID == "" || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	unlock, err := s.locks.Lock(lockCtx, draftKey(input.LeagueID, input.GameID))
	cancel()
	if err != nil {
		return nil, tracker.StoreUnavailable("wait for draft", err)
	}
	defer unlock()

	participants, picks, err := s.loadDraft(ctx, input.LeagueID, input.GameID)
	if err != nil {
		return nil, err
	}

	// The turn is settled before the roster is fetched
	if turn, ok := tracker.CurrentTurn(participants, picks, input.GameID); !ok || turn != input.ParticipantID {
		s.logRejected(input, tracker.ErrNotYourTurn)
		return nil, tracker.ErrNotYourTurn
	}

	players, err := s.loadRoster(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	pick, err := tracker.AttemptPick(tracker.PickRequest{
		PickID:        s.uuidGenerator.NewUUID(),
		PickedAt:      s.clock.Now(),
		LeagueID:      input.LeagueID,
		GameID:        input.GameID,
		ParticipantID: input.ParticipantID,
		PlayerID:      input.PlayerID,
	}, participants, players, picks)
	if err != nil {
		s.logRejected(input, err)
		return nil, err
	}

	err = s.pickRepo.AppendPick(ctx, &pickRepo.AppendPickInput{
		Pick: pick,
	})
	switch {
	case errors.Is(err, pickRepo.ErrPlayerTaken):
		return nil, tracker.ErrPlayerAlreadyTaken
	case errors.Is(err, pickRepo.ErrParticipantHasPick):
		return nil, tracker.ErrAlreadyPicked
	case err != nil:
		return nil, tracker.StoreUnavailable("append pick", err)
	}

	state := tracker.Derive(input.LeagueID, participants, tracker.Append(picks, pick), input.GameID)

	s.logger.Info().
		Str("league_id", input.LeagueID).
		Str("game_id", input.GameID).
		Str("participant_id", pick.ParticipantID).
		Str("player", pick.PlayerName).
		Str("next_turn", state.CurrentTurn).
		Msg("Pick recorded")

	s.publish(ctx, &models.DraftEvent{
		Type:     models.DraftEventPickMade,
		LeagueID: input.LeagueID,
		GameID:   input.GameID,
		Pick:     pick,
		State:    state,
	})
	if state.IsComplete() {
		s.publish(ctx, &models.DraftEvent{
			Type:     models.DraftEventDraftCompleted,
			LeagueID: input.LeagueID,
			GameID:   input.GameID,
			State:    state,
		})
	}

	return &AttemptPickOutput{
		Pick:  pick,
		State: state,
	}, nil
}

// ListPicks returns a game's picks in the order they were made
func (s *service) ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.pickRepo.ListPicks(ctx, &pickRepo.ListPicksInput{
		LeagueID: input.LeagueID,
		GameID:   input.GameID,
	})
	if err != nil {
		return nil, tracker.StoreUnavailable("list picks", err)
	}

	return &ListPicksOutput{
		Picks: output.Picks,
	}, nil
}

// JoinLeague adds a user to the end of the league's draft order
func (s *service) JoinLeague(ctx context.Context, input *JoinLeagueInput) (*JoinLeagueOutput, error) {
	if input == nil || input.LeagueID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	participant := &models.Participant{
		ID:          input.UserID,
		LeagueID:    input.LeagueID,
		DisplayName: input.DisplayName,
		JoinedAt:    s.clock.Now(),
	}

	err := s.membershipRepo.AddParticipant(ctx, &membershipRepo.AddParticipantInput{
		Participant: participant,
	})
	if err != nil {
		if errors.Is(err, membershipRepo.ErrAlreadyMember) {
			return nil, ErrAlreadyMember
		}
		return nil, tracker.StoreUnavailable("add participant", err)
	}

	s.logger.Info().
		Str("league_id", input.LeagueID).
		Str("user_id", input.UserID).
		Msg("Participant joined")

	s.publish(ctx, &models.DraftEvent{
		Type:        models.DraftEventParticipantJoined,
		LeagueID:    input.LeagueID,
		Participant: participant,
	})

	return &JoinLeagueOutput{
		Participant: participant,
	}, nil
}

// LeaveLeague removes a user from the league
func (s *service) LeaveLeague(ctx context.Context, input *LeaveLeagueInput) (*LeaveLeagueOutput, error) {
	if input == nil || input.LeagueID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	participant, err := s.membershipRepo.GetParticipant(ctx, &membershipRepo.GetParticipantInput{
		LeagueID:      input.LeagueID,
		ParticipantID: input.UserID,
	})
	if err != nil {
		if errors.Is(err, membershipRepo.ErrParticipantNotFound) {
			return nil, ErrNotMember
		}
		return nil, tracker.StoreUnavailable("get participant", err)
	}

	err = s.membershipRepo.RemoveParticipant(ctx, &membershipRepo.RemoveParticipantInput{
		LeagueID:      input.LeagueID,
		ParticipantID: input.UserID,
	})
	if err != nil {
		if errors.Is(err, membershipRepo.ErrParticipantNotFound) {
			return nil, ErrNotMember
		}
		return nil, tracker.StoreUnavailable("remove participant", err)
	}

	s.logger.Info().
		Str("league_id", input.LeagueID).
		Str("user_id", input.UserID).
		Msg("Participant left")

	s.publish(ctx, &models.DraftEvent{
		Type:        models.DraftEventParticipantLeft,
		LeagueID:    input.LeagueID,
		Participant: participant,
	})

	return &LeaveLeagueOutput{
		Success: true,
	}, nil
}

// ListParticipants returns the league's members in draft order
func (s *service) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.LeagueID == "" {
		return nil, ErrInvalidInput
	}

	participants, err := s.listParticipants(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}

	return &ListParticipantsOutput{
		Participants: tracker.Order(participants),
	}, nil
}

func (s *service) listParticipants(ctx context.Context, leagueID string) ([]*models.Participant, error) {
	output, err := s.membershipRepo.ListParticipants(ctx, &membershipRepo.ListParticipantsInput{
		LeagueID: leagueID,
	})
	if err != nil {
		return nil, tracker.StoreUnavailable("list participants", err)
	}
	return output.Participants, nil
}

func (s *service) loadDraft(ctx context.Context, leagueID, gameID string) ([]*models.Participant, []*models.Pick, error) {
	participants, err := s.listParticipants(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}

	output, err := s.pickRepo.ListPicks(ctx, &pickRepo.ListPicksInput{
		LeagueID: leagueID,
		GameID:   gameID,
	})
	if err != nil {
		return nil, nil, tracker.StoreUnavailable("list picks", err)
	}

	return participants, output.Picks, nil
}

func (s *service) logRejected(input *AttemptPickInput, err error) {
	s.logger.Debug().
		Err(err).
		Str("league_id", input.LeagueID).
		Str("game_id", input.GameID).
		Str("participant_id", input.ParticipantID).
		Str("player_id", input.PlayerID).
		Msg("Pick rejected")
}

// loadRoster treats a game the source has no players for as an empty roster, so every pick
// for it is rejected as an unknown player. Only failures a retry could fix are unavailable.
func (s *service) loadRoster(ctx context.Context, gameID string) ([]*models.Player, error) {
	output, err := s.rosterService.GetRoster(ctx, &roster.GetRosterInput{
		GameID: gameID,
	})
	switch {
	case errors.Is(err, roster.ErrEmptyRoster),
		errors.Is(err, roster.ErrTeamNotInGame),
		errors.Is(err, roster.ErrUnknownGame):
		s.logger.Debug().Err(err).Str("game_id", gameID).Msg("No roster for game")
		return nil, nil
	case err != nil:
		return nil, tracker.StoreUnavailable("load roster", err)
	}
	return output.Players, nil
}

func (s *service) loadState(ctx context.Context, leagueID, gameID string) (*models.DraftState, error) {
	participants, picks, err := s.loadDraft(ctx, leagueID, gameID)
	if err != nil {
		return nil, err
	}
	return tracker.Derive(leagueID, participants, picks, gameID), nil
}

// publish stamps and delivers an event. Delivery failures never fail the operation.
func (s *service) publish(ctx context.Context, event *models.DraftEvent) {
	event.ID = s.uuidGenerator.NewUUID()
	event.OccurredAt = s.clock.Now()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", string(event.Type)).
			Str("league_id", event.LeagueID).
			Msg("Failed to publish draft event")
	}
}
