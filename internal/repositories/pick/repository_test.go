package pick

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/stretchr/testify/suite"
)

// repositoryTestSuite holds the behaviour every Repository implementation shares.
// Implementation suites embed it and assign repo in SetupTest.
type repositoryTestSuite struct {
	suite.Suite
	repo     Repository
	testTime time.Time
}

func (s *repositoryTestSuite) newPick(leagueID, gameID, participantID, playerID string) *models.Pick {
	return &models.Pick{
		ID:             fmt.Sprintf("%s-%s-%s", leagueID, gameID, participantID),
		LeagueID:       leagueID,
		GameID:         gameID,
		ParticipantID:  participantID,
		PlayerID:       playerID,
		PlayerName:     "Player " + playerID,
		PlayerNumber:   71,
		PlayerPosition: "C",
		CreatedAt:      s.testTime,
	}
}

func (s *repositoryTestSuite) TestAppendAndListPicksInOrder() {
	ctx := context.Background()
	for i, participantID := range []string{"user-3", "user-1", "user-2"} {
		err := s.repo.AppendPick(ctx, &AppendPickInput{
			Pick: s.newPick("league-1", "game-1", participantID, fmt.Sprintf("P%d", i)),
		})
		s.Require().NoError(err)
	}

	output, err := s.repo.ListPicks(ctx, &ListPicksInput{
		LeagueID: "league-1",
		GameID:   "game-1",
	})
	s.Require().NoError(err)
	s.Require().Len(output.Picks, 3)

	s.Equal("user-3", output.Picks[0].ParticipantID)
	s.Equal("user-1", output.Picks[1].ParticipantID)
	s.Equal("user-2", output.Picks[2].ParticipantID)

	first := output.Picks[0]
	s.Equal("P0", first.PlayerID)
	s.Equal("Player P0", first.PlayerName)
	s.Equal(71, first.PlayerNumber)
	s.Equal("C", first.PlayerPosition)
	s.Equal(s.testTime.Unix(), first.CreatedAt.Unix())
}

func (s *repositoryTestSuite) TestListPicksEmptyDraft() {
	output, err := s.repo.ListPicks(context.Background(), &ListPicksInput{
		LeagueID: "league-1",
		GameID:   "game-1",
	})
	s.Require().NoError(err)
	s.Empty(output.Picks)
}

func (s *repositoryTestSuite) TestAppendPickPlayerTaken() {
	ctx := context.Background()
	s.Require().NoError(s.repo.AppendPick(ctx, &AppendPickInput{
		Pick: s.newPick("league-1", "game-1", "user-1", "P1"),
	}))

	err := s.repo.AppendPick(ctx, &AppendPickInput{
		Pick: s.newPick("league-1", "game-1", "user-2", "P1"),
	})
	s.ErrorIs(err, ErrPlayerTaken)

	output, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: "league-1", GameID: "game-1"})
	s.Require().NoError(err)
	s.Len(output.Picks, 1)
}

func (s *repositoryTestSuite) TestAppendPickParticipantHasPick() {
	ctx := context.Background()
	s.Require().NoError(s.repo.AppendPick(ctx, &AppendPickInput{
		Pick: s.newPick("league-1", "game-1", "user-1", "P1"),
	}))

	second := s.newPick("league-1", "game-1", "user-1", "P2")
	second.ID = "second-pick"
	err := s.repo.AppendPick(ctx, &AppendPickInput{Pick: second})
	s.ErrorIs(err, ErrParticipantHasPick)

	output, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: "league-1", GameID: "game-1"})
	s.Require().NoError(err)
	s.Len(output.Picks, 1)
}

func (s *repositoryTestSuite) TestDraftsAreIsolatedByLeagueAndGame() {
	ctx := context.Background()
	for _, p := range []*models.Pick{
		s.newPick("league-1", "game-1", "user-1", "P1"),
		s.newPick("league-2", "game-1", "user-1", "P1"),
		s.newPick("league-1", "game-2", "user-1", "P1"),
	} {
		s.Require().NoError(s.repo.AppendPick(ctx, &AppendPickInput{Pick: p}))
	}

	for _, key := range [][2]string{{"league-1", "game-1"}, {"league-2", "game-1"}, {"league-1", "game-2"}} {
		output, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: key[0], GameID: key[1]})
		s.Require().NoError(err)
		s.Len(output.Picks, 1, "draft %v", key)
	}
}

func (s *repositoryTestSuite) TestDraftsWithSeparatorsInIDsAreIsolated() {
	ctx := context.Background()
	s.Require().NoError(s.repo.AppendPick(ctx, &AppendPickInput{
		Pick: s.newPick("a:b", "c", "user-1", "P1"),
	}))

	// Same player in a different draft whose ids join to the same text
	err := s.repo.AppendPick(ctx, &AppendPickInput{
		Pick: s.newPick("a", "b:c", "user-1", "P1"),
	})
	s.Require().NoError(err)

	for _, key := range [][2]string{{"a:b", "c"}, {"a", "b:c"}} {
		output, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: key[0], GameID: key[1]})
		s.Require().NoError(err)
		s.Require().Len(output.Picks, 1, "draft %v", key)
		s.Equal(key[0], output.Picks[0].LeagueID)
		s.Equal(key[1], output.Picks[0].GameID)
	}
}

func (s *repositoryTestSuite) TestConcurrentAppendsClaimPlayerOnce() {
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.repo.AppendPick(ctx, &AppendPickInput{
				Pick: s.newPick("league-1", "game-1", fmt.Sprintf("user-%d", i), "P1"),
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, accepted)

	output, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: "league-1", GameID: "game-1"})
	s.Require().NoError(err)
	s.Len(output.Picks, 1)
}

func (s *repositoryTestSuite) TestAppendPickValidation() {
	ctx := context.Background()

	s.Error(s.repo.AppendPick(ctx, nil))
	s.Error(s.repo.AppendPick(ctx, &AppendPickInput{}))

	missingPlayer := s.newPick("league-1", "game-1", "user-1", "")
	s.Error(s.repo.AppendPick(ctx, &AppendPickInput{Pick: missingPlayer}))

	_, err := s.repo.ListPicks(ctx, &ListPicksInput{LeagueID: "league-1"})
	s.Error(err)
}
