package membership

import (
	"context"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/stretchr/testify/suite"
)

// repositoryTestSuite holds the behaviour every Repository implementation shares
type repositoryTestSuite struct {
	suite.Suite
	repo     Repository
	testTime time.Time
}

func (s *repositoryTestSuite) join(leagueID, userID string, joinedAt time.Time) {
	err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
		Participant: &models.Participant{
			ID:          userID,
			LeagueID:    leagueID,
			DisplayName: "User " + userID,
			JoinedAt:    joinedAt,
		},
	})
	s.Require().NoError(err)
}

func (s *repositoryTestSuite) list(leagueID string) []string {
	output, err := s.repo.ListParticipants(context.Background(), &ListParticipantsInput{
		LeagueID: leagueID,
	})
	s.Require().NoError(err)

	ids := make([]string, 0, len(output.Participants))
	for _, p := range output.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *repositoryTestSuite) TestListParticipantsInJoinOrder() {
	s.join("league-1", "carol", s.testTime.Add(2*time.Minute))
	s.join("league-1", "alice", s.testTime)
	s.join("league-1", "bob", s.testTime.Add(time.Minute))
	s.join("league-2", "dave", s.testTime)

	s.Equal([]string{"alice", "bob", "carol"}, s.list("league-1"))
	s.Equal([]string{"dave"}, s.list("league-2"))
	s.Empty(s.list("league-3"))
}

func (s *repositoryTestSuite) TestListParticipantsTiesBrokenByID() {
	s.join("league-1", "zed", s.testTime)
	s.join("league-1", "amy", s.testTime)

	s.Equal([]string{"amy", "zed"}, s.list("league-1"))
}

func (s *repositoryTestSuite) TestAddParticipantTwice() {
	s.join("league-1", "alice", s.testTime)

	err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
		Participant: &models.Participant{ID: "alice", LeagueID: "league-1", JoinedAt: s.testTime.Add(time.Hour)},
	})
	s.ErrorIs(err, ErrAlreadyMember)

	// The original join time is kept
	p, err := s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		LeagueID:      "league-1",
		ParticipantID: "alice",
	})
	s.Require().NoError(err)
	s.Equal(s.testTime.Unix(), p.JoinedAt.Unix())
}

func (s *repositoryTestSuite) TestGetParticipant() {
	s.join("league-1", "alice", s.testTime)

	p, err := s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		LeagueID:      "league-1",
		ParticipantID: "alice",
	})
	s.Require().NoError(err)
	s.Equal("alice", p.ID)
	s.Equal("league-1", p.LeagueID)
	s.Equal("User alice", p.DisplayName)

	_, err = s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		LeagueID:      "league-2",
		ParticipantID: "alice",
	})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *repositoryTestSuite) TestRemoveParticipant() {
	s.join("league-1", "alice", s.testTime)
	s.join("league-1", "bob", s.testTime.Add(time.Minute))

	err := s.repo.RemoveParticipant(context.Background(), &RemoveParticipantInput{
		LeagueID:      "league-1",
		ParticipantID: "alice",
	})
	s.Require().NoError(err)
	s.Equal([]string{"bob"}, s.list("league-1"))

	err = s.repo.RemoveParticipant(context.Background(), &RemoveParticipantInput{
		LeagueID:      "league-1",
		ParticipantID: "alice",
	})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *repositoryTestSuite) TestRejoinGoesToTheEnd() {
	s.join("league-1", "alice", s.testTime)
	s.join("league-1", "bob", s.testTime.Add(time.Minute))

	s.Require().NoError(s.repo.RemoveParticipant(context.Background(), &RemoveParticipantInput{
		LeagueID:      "league-1",
		ParticipantID: "alice",
	}))
	s.join("league-1", "alice", s.testTime.Add(time.Hour))

	s.Equal([]string{"bob", "alice"}, s.list("league-1"))
}

func (s *repositoryTestSuite) TestAddParticipantValidation() {
	ctx := context.Background()

	s.Error(s.repo.AddParticipant(ctx, nil))
	s.Error(s.repo.AddParticipant(ctx, &AddParticipantInput{}))
	s.Error(s.repo.AddParticipant(ctx, &AddParticipantInput{
		Participant: &models.Participant{ID: "alice", LeagueID: "league-1"},
	}))
}
