package draft

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/common/clock/mocks"
	"github.com/KirkDiggler/lightthelamp/internal/common/keylock"
	uuidMocks "github.com/KirkDiggler/lightthelamp/internal/common/uuid/mocks"
	tracker "github.com/KirkDiggler/lightthelamp/internal/draft"
	eventMocks "github.com/KirkDiggler/lightthelamp/internal/events/mocks"
	"github.com/KirkDiggler/lightthelamp/internal/models"
	membershipRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/membership"
	membershipMocks "github.com/KirkDiggler/lightthelamp/internal/repositories/membership/mocks"
	pickRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/pick"
	pickMocks "github.com/KirkDiggler/lightthelamp/internal/repositories/pick/mocks"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	rosterMocks "github.com/KirkDiggler/lightthelamp/internal/services/roster/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DraftServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockMembershipRepo *membershipMocks.MockRepository
	mockPickRepo       *pickMocks.MockRepository
	mockRosterService  *rosterMocks.MockService
	mockPublisher      *eventMocks.MockPublisher
	mockClock          *mocks.MockClock
	mockUUID           *uuidMocks.MockUUID
	draftService       Service
	ctx                context.Context

	// Test data
	testTime     time.Time
	testLeagueID string
	testGameID   string
	testPickID   string

	participants []*models.Participant
	roster       []*models.Player
}

func (s *DraftServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMembershipRepo = membershipMocks.NewMockRepository(s.mockCtrl)
	s.mockPickRepo = pickMocks.NewMockRepository(s.mockCtrl)
	s.mockRosterService = rosterMocks.NewMockService(s.mockCtrl)
	s.mockPublisher = eventMocks.NewMockPublisher(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 10, 9, 19, 0, 0, 0, time.UTC)
	s.testLeagueID = "test-league-id"
	s.testGameID = "test-game-id"
	s.testPickID = "test-pick-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testPickID).AnyTimes()

	s.participants = []*models.Participant{
		{ID: "A", LeagueID: s.testLeagueID, JoinedAt: s.testTime.Add(-3 * time.Hour)},
		{ID: "B", LeagueID: s.testLeagueID, JoinedAt: s.testTime.Add(-2 * time.Hour)},
	}
	s.roster = []*models.Player{
		{ID: "P1", Name: "Dylan Larkin", Number: 71, Position: "C"},
		{ID: "P2", Name: "Lucas Raymond", Number: 23, Position: "RW"},
	}

	svc, err := New(&Config{
		MembershipRepo: s.mockMembershipRepo,
		PickRepo:       s.mockPickRepo,
		RosterService:  s.mockRosterService,
		Publisher:      s.mockPublisher,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
	})
	s.Require().NoError(err)
	s.draftService = svc
}

func (s *DraftServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDraftServiceSuite(t *testing.T) {
	suite.Run(t, new(DraftServiceTestSuite))
}

func (s *DraftServiceTestSuite) expectParticipants() {
	s.mockMembershipRepo.EXPECT().
		ListParticipants(s.ctx, &membershipRepo.ListParticipantsInput{LeagueID: s.testLeagueID}).
		Return(&membershipRepo.ListParticipantsOutput{Participants: s.participants}, nil)
}

func (s *DraftServiceTestSuite) expectPicks(picks ...*models.Pick) {
	s.mockPickRepo.EXPECT().
		ListPicks(s.ctx, &pickRepo.ListPicksInput{LeagueID: s.testLeagueID, GameID: s.testGameID}).
		Return(&pickRepo.ListPicksOutput{Picks: picks}, nil)
}

func (s *DraftServiceTestSuite) expectRoster() {
	s.mockRosterService.EXPECT().
		GetRoster(s.ctx, &roster.GetRosterInput{GameID: s.testGameID}).
		Return(&roster.GetRosterOutput{GameID: s.testGameID, Players: s.roster}, nil)
}

func (s *DraftServiceTestSuite) pickInput(participantID, playerID string) *AttemptPickInput {
	return &AttemptPickInput{
		LeagueID:      s.testLeagueID,
		GameID:        s.testGameID,
		ParticipantID: participantID,
		PlayerID:      playerID,
	}
}

func (s *DraftServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilMembershipRepo)

	_, err = New(&Config{MembershipRepo: s.mockMembershipRepo})
	s.ErrorIs(err, ErrNilPickRepo)

	_, err = New(&Config{MembershipRepo: s.mockMembershipRepo, PickRepo: s.mockPickRepo})
	s.ErrorIs(err, ErrNilRosterService)

	_, err = New(&Config{MembershipRepo: s.mockMembershipRepo, PickRepo: s.mockPickRepo, RosterService: s.mockRosterService})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{MembershipRepo: s.mockMembershipRepo, PickRepo: s.mockPickRepo, RosterService: s.mockRosterService, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *DraftServiceTestSuite) TestAttemptPickRecordsAndPublishes() {
	s.expectParticipants()
	s.expectPicks()
	s.expectRoster()

	expectedPick := &models.Pick{
		ID:             s.testPickID,
		LeagueID:       s.testLeagueID,
		GameID:         s.testGameID,
		ParticipantID:  "A",
		PlayerID:       "P1",
		PlayerName:     "Dylan Larkin",
		PlayerNumber:   71,
		PlayerPosition: "C",
		CreatedAt:      s.testTime,
	}
	s.mockPickRepo.EXPECT().
		AppendPick(s.ctx, &pickRepo.AppendPickInput{Pick: expectedPick}).
		Return(nil)
	s.mockPublisher.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *models.DraftEvent) error {
			s.Equal(models.DraftEventPickMade, event.Type)
			s.Equal(s.testLeagueID, event.LeagueID)
			s.Equal(s.testGameID, event.GameID)
			s.Equal(expectedPick, event.Pick)
			s.Equal("B", event.State.CurrentTurn)
			s.Equal(s.testTime, event.OccurredAt)
			return nil
		})

	output, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

	s.Require().NoError(err)
	s.Equal(expectedPick, output.Pick)
	s.Equal(models.DraftStatusActive, output.State.Status)
	s.Equal("B", output.State.CurrentTurn)
	s.Len(output.State.Picks, 1)
}

func (s *DraftServiceTestSuite) TestAttemptPickLastPickCompletesDraft() {
	s.expectParticipants()
	s.expectPicks(&models.Pick{ID: "first", LeagueID: s.testLeagueID, GameID: s.testGameID, ParticipantID: "A", PlayerID: "P1"})
	s.expectRoster()
	s.mockPickRepo.EXPECT().AppendPick(s.ctx, gomock.Any()).Return(nil)

	var published []models.DraftEventType
	s.mockPublisher.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *models.DraftEvent) error {
			published = append(published, event.Type)
			return nil
		}).
		Times(2)

	output, err := s.draftService.AttemptPick(s.ctx, s.pickInput("B", "P2"))

	s.Require().NoError(err)
	s.True(output.State.IsComplete())
	s.Empty(output.State.CurrentTurn)
	s.Equal([]models.DraftEventType{models.DraftEventPickMade, models.DraftEventDraftCompleted}, published)
}

func (s *DraftServiceTestSuite) TestAttemptPickNotYourTurn() {
	s.expectParticipants()
	s.expectPicks()

	// The roster is never fetched for a caller who is not up
	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("B", "P1"))

	s.ErrorIs(err, tracker.ErrNotYourTurn)
}

func (s *DraftServiceTestSuite) TestAttemptPickNonMemberIsNotYourTurn() {
	s.expectParticipants()
	s.expectPicks()

	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("stranger", "P1"))

	s.ErrorIs(err, tracker.ErrNotYourTurn)
	s.NotErrorIs(err, tracker.ErrStoreUnavailable)
}

func (s *DraftServiceTestSuite) TestAttemptPickGameWithoutRosterIsUnknownPlayer() {
	for _, rosterErr := range []error{
		fmt.Errorf("failed to load roster from sportradar: %w", roster.ErrTeamNotInGame),
		fmt.Errorf("failed to load roster from sportradar: %w", fmt.Errorf("%w: status 404", roster.ErrUnknownGame)),
	} {
		s.expectParticipants()
		s.expectPicks()
		s.mockRosterService.EXPECT().GetRoster(s.ctx, gomock.Any()).Return(nil, rosterErr)

		_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

		s.ErrorIs(err, tracker.ErrUnknownPlayer, rosterErr.Error())
		s.NotErrorIs(err, tracker.ErrStoreUnavailable, rosterErr.Error())
	}
}

func (s *DraftServiceTestSuite) TestAttemptPickGivesUpWaitingForBusyDraft() {
	locks := keylock.New()
	svc, err := New(&Config{
		MembershipRepo: s.mockMembershipRepo,
		PickRepo:       s.mockPickRepo,
		RosterService:  s.mockRosterService,
		Publisher:      s.mockPublisher,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
		Locks:          locks,
		LockTimeout:    20 * time.Millisecond,
	})
	s.Require().NoError(err)

	// Another pick for the same draft is stuck
	unlock, err := locks.Lock(s.ctx, draftKey(s.testLeagueID, s.testGameID))
	s.Require().NoError(err)
	defer unlock()

	_, err = svc.AttemptPick(s.ctx, s.pickInput("A", "P1"))

	s.ErrorIs(err, tracker.ErrStoreUnavailable)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *DraftServiceTestSuite) TestDraftKeySeparatesIDsContainingColons() {
	s.NotEqual(draftKey("a:b", "c"), draftKey("a", "b:c"))
}

func (s *DraftServiceTestSuite) TestAttemptPickUnknownPlayer() {
	s.expectParticipants()
	s.expectPicks()
	s.expectRoster()

	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P99"))

	s.ErrorIs(err, tracker.ErrUnknownPlayer)
}

func (s *DraftServiceTestSuite) TestAttemptPickEmptyRosterIsUnknownPlayer() {
	s.expectParticipants()
	s.expectPicks()
	s.mockRosterService.EXPECT().GetRoster(s.ctx, gomock.Any()).Return(nil, roster.ErrEmptyRoster)

	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

	s.ErrorIs(err, tracker.ErrUnknownPlayer)
}

func (s *DraftServiceTestSuite) TestAttemptPickStoreConflictsMapToDraftErrors() {
	for _, tc := range []struct {
		storeErr error
		expected error
	}{
		{storeErr: pickRepo.ErrPlayerTaken, expected: tracker.ErrPlayerAlreadyTaken},
		{storeErr: pickRepo.ErrParticipantHasPick, expected: tracker.ErrAlreadyPicked},
	} {
		s.expectParticipants()
		s.expectPicks()
		s.expectRoster()
		s.mockPickRepo.EXPECT().AppendPick(s.ctx, gomock.Any()).Return(tc.storeErr)

		_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

		s.ErrorIs(err, tc.expected)
	}
}

func (s *DraftServiceTestSuite) TestAttemptPickStoreFailureIsUnavailable() {
	cause := errors.New("connection refused")
	s.expectParticipants()
	s.expectPicks()
	s.expectRoster()
	s.mockPickRepo.EXPECT().AppendPick(s.ctx, gomock.Any()).Return(cause)

	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

	s.ErrorIs(err, tracker.ErrStoreUnavailable)
	s.ErrorIs(err, cause)
}

func (s *DraftServiceTestSuite) TestAttemptPickCollaboratorFailuresAreUnavailable() {
	cause := errors.New("timeout")

	s.mockMembershipRepo.EXPECT().ListParticipants(s.ctx, gomock.Any()).Return(nil, cause)
	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))
	s.ErrorIs(err, tracker.ErrStoreUnavailable)

	s.expectParticipants()
	s.mockPickRepo.EXPECT().ListPicks(s.ctx, gomock.Any()).Return(nil, cause)
	_, err = s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))
	s.ErrorIs(err, tracker.ErrStoreUnavailable)

	s.expectParticipants()
	s.expectPicks()
	s.mockRosterService.EXPECT().GetRoster(s.ctx, gomock.Any()).Return(nil, cause)
	_, err = s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))
	s.ErrorIs(err, tracker.ErrStoreUnavailable)
	s.ErrorIs(err, cause)
}

func (s *DraftServiceTestSuite) TestAttemptPickPublishFailureDoesNotFailPick() {
	s.expectParticipants()
	s.expectPicks()
	s.expectRoster()
	s.mockPickRepo.EXPECT().AppendPick(s.ctx, gomock.Any()).Return(nil)
	s.mockPublisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(errors.New("nats down"))

	output, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", "P1"))

	s.Require().NoError(err)
	s.Equal("P1", output.Pick.PlayerID)
}

func (s *DraftServiceTestSuite) TestAttemptPickInvalidInput() {
	_, err := s.draftService.AttemptPick(s.ctx, s.pickInput("A", ""))
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.draftService.AttemptPick(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *DraftServiceTestSuite) TestCurrentTurnSkipsDepartedParticipant() {
	// A left after picking; B is next even though A's pick is the only one
	s.mockMembershipRepo.EXPECT().
		ListParticipants(s.ctx, gomock.Any()).
		Return(&membershipRepo.ListParticipantsOutput{Participants: s.participants[1:]}, nil)
	s.expectPicks(&models.Pick{ID: "a", GameID: s.testGameID, ParticipantID: "A", PlayerID: "P1"})

	output, err := s.draftService.CurrentTurn(s.ctx, &CurrentTurnInput{LeagueID: s.testLeagueID, GameID: s.testGameID})

	s.Require().NoError(err)
	s.Equal("B", output.ParticipantID)
	s.False(output.Complete)
}

func (s *DraftServiceTestSuite) TestIsComplete() {
	s.expectParticipants()
	s.expectPicks(
		&models.Pick{ID: "a", GameID: s.testGameID, ParticipantID: "A", PlayerID: "P1"},
		&models.Pick{ID: "b", GameID: s.testGameID, ParticipantID: "B", PlayerID: "P2"},
	)

	output, err := s.draftService.IsComplete(s.ctx, &IsCompleteInput{LeagueID: s.testLeagueID, GameID: s.testGameID})

	s.Require().NoError(err)
	s.True(output.Complete)
}

func (s *DraftServiceTestSuite) TestGetDraftState() {
	s.expectParticipants()
	s.expectPicks()

	output, err := s.draftService.GetDraftState(s.ctx, &GetDraftStateInput{LeagueID: s.testLeagueID, GameID: s.testGameID})

	s.Require().NoError(err)
	s.Equal("A", output.State.CurrentTurn)
	s.Equal([]string{"A", "B"}, output.State.Remaining)
}

func (s *DraftServiceTestSuite) TestListPicks() {
	s.expectPicks(&models.Pick{ID: "a", GameID: s.testGameID, ParticipantID: "A", PlayerID: "P1"})

	output, err := s.draftService.ListPicks(s.ctx, &ListPicksInput{LeagueID: s.testLeagueID, GameID: s.testGameID})

	s.Require().NoError(err)
	s.Len(output.Picks, 1)
}

func (s *DraftServiceTestSuite) TestJoinLeague() {
	expected := &models.Participant{
		ID:          "C",
		LeagueID:    s.testLeagueID,
		DisplayName: "Carol",
		JoinedAt:    s.testTime,
	}
	s.mockMembershipRepo.EXPECT().
		AddParticipant(s.ctx, &membershipRepo.AddParticipantInput{Participant: expected}).
		Return(nil)
	s.mockPublisher.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *models.DraftEvent) error {
			s.Equal(models.DraftEventParticipantJoined, event.Type)
			s.Equal(expected, event.Participant)
			s.Empty(event.GameID)
			return nil
		})

	output, err := s.draftService.JoinLeague(s.ctx, &JoinLeagueInput{
		LeagueID:    s.testLeagueID,
		UserID:      "C",
		DisplayName: "Carol",
	})

	s.Require().NoError(err)
	s.Equal(expected, output.Participant)
}

func (s *DraftServiceTestSuite) TestJoinLeagueAlreadyMember() {
	s.mockMembershipRepo.EXPECT().AddParticipant(s.ctx, gomock.Any()).Return(membershipRepo.ErrAlreadyMember)

	_, err := s.draftService.JoinLeague(s.ctx, &JoinLeagueInput{LeagueID: s.testLeagueID, UserID: "A"})

	s.ErrorIs(err, ErrAlreadyMember)
}

func (s *DraftServiceTestSuite) TestLeaveLeague() {
	s.mockMembershipRepo.EXPECT().
		GetParticipant(s.ctx, &membershipRepo.GetParticipantInput{LeagueID: s.testLeagueID, ParticipantID: "A"}).
		Return(s.participants[0], nil)
	s.mockMembershipRepo.EXPECT().
		RemoveParticipant(s.ctx, &membershipRepo.RemoveParticipantInput{LeagueID: s.testLeagueID, ParticipantID: "A"}).
		Return(nil)
	s.mockPublisher.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *models.DraftEvent) error {
			s.Equal(models.DraftEventParticipantLeft, event.Type)
			s.Equal("A", event.Participant.ID)
			return nil
		})

	output, err := s.draftService.LeaveLeague(s.ctx, &LeaveLeagueInput{LeagueID: s.testLeagueID, UserID: "A"})

	s.Require().NoError(err)
	s.True(output.Success)
}

func (s *DraftServiceTestSuite) TestLeaveLeagueNotMember() {
	s.mockMembershipRepo.EXPECT().GetParticipant(s.ctx, gomock.Any()).Return(nil, membershipRepo.ErrParticipantNotFound)

	_, err := s.draftService.LeaveLeague(s.ctx, &LeaveLeagueInput{LeagueID: s.testLeagueID, UserID: "Z"})

	s.ErrorIs(err, ErrNotMember)
}

func (s *DraftServiceTestSuite) TestListParticipantsInDraftOrder() {
	s.mockMembershipRepo.EXPECT().
		ListParticipants(s.ctx, gomock.Any()).
		Return(&membershipRepo.ListParticipantsOutput{Participants: []*models.Participant{s.participants[1], s.participants[0]}}, nil)

	output, err := s.draftService.ListParticipants(s.ctx, &ListParticipantsInput{LeagueID: s.testLeagueID})

	s.Require().NoError(err)
	s.Require().Len(output.Participants, 2)
	s.Equal("A", output.Participants[0].ID)
}

func (s *DraftServiceTestSuite) TestServiceErrorCodes() {
	s.Equal("already_member", ErrAlreadyMember.Code())
	s.Equal("not_member", ErrNotMember.Code())
	s.Equal("invalid_input", ErrInvalidInput.Code())
}
