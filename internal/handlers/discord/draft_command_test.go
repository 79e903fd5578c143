package discord

import (
	"errors"
	"testing"
	"time"

	tracker "github.com/KirkDiggler/lightthelamp/internal/draft"
	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	draftMocks "github.com/KirkDiggler/lightthelamp/internal/services/draft/mocks"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	rosterMocks "github.com/KirkDiggler/lightthelamp/internal/services/roster/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeResponder records interaction responses instead of calling Discord
type fakeResponder struct {
	responses []*discordgo.InteractionResponse
}

func (f *fakeResponder) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) last() *discordgo.InteractionResponse {
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

type DraftCommandTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockDraftService  *draftMocks.MockService
	mockRosterService *rosterMocks.MockService
	responder         *fakeResponder
	bot               *Bot

	testTime      time.Time
	testChannelID string
	testUserID    string
	game          *models.Game
	players       []*models.Player
}

func (s *DraftCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDraftService = draftMocks.NewMockService(s.mockCtrl)
	s.mockRosterService = rosterMocks.NewMockService(s.mockCtrl)
	s.responder = &fakeResponder{}

	bot, err := New(&Config{
		Token:         "test-token",
		DraftService:  s.mockDraftService,
		RosterService: s.mockRosterService,
	})
	s.Require().NoError(err)
	bot.addCommand(NewDraftCommand(s.mockDraftService, s.mockRosterService))
	s.bot = bot

	s.testTime = time.Date(2025, 10, 9, 19, 0, 0, 0, time.UTC)
	s.testChannelID = "test-channel-id"
	s.testUserID = "test-user-id"
	s.game = &models.Game{ID: "test-game-id", Opponent: "Buffalo Sabres"}
	s.players = []*models.Player{
		{ID: "det-71", Name: "Dylan Larkin", Number: 71, Position: "C"},
		{ID: "det-23", Name: "Lucas Raymond", Number: 23, Position: "RW"},
		{ID: "det-93", Name: "Alex DeBrincat", Number: 93, Position: "LW"},
		{ID: "det-34", Name: "Alex Lyon", Number: 34, Position: "G"},
	}
}

func (s *DraftCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDraftCommandSuite(t *testing.T) {
	suite.Run(t, new(DraftCommandTestSuite))
}

func (s *DraftCommandTestSuite) command(sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: s.testChannelID,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: s.testUserID, Username: "larkinfan"},
				Nick: "Larkin Fan",
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: commandName,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:    sub,
						Type:    discordgo.ApplicationCommandOptionSubCommand,
						Options: options,
					},
				},
			},
		},
	}
}

func (s *DraftCommandTestSuite) playerOption(value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "player",
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func (s *DraftCommandTestSuite) expectCurrentGame() {
	s.mockRosterService.EXPECT().
		CurrentGame(gomock.Any()).
		Return(&roster.CurrentGameOutput{Game: s.game}, nil)
}

func (s *DraftCommandTestSuite) expectRoster() {
	s.mockRosterService.EXPECT().
		GetRoster(gomock.Any(), &roster.GetRosterInput{GameID: s.game.ID}).
		Return(&roster.GetRosterOutput{GameID: s.game.ID, Players: s.players}, nil)
}

func (s *DraftCommandTestSuite) TestPickByJerseyNumber() {
	s.expectCurrentGame()
	s.expectRoster()
	s.mockDraftService.EXPECT().
		AttemptPick(gomock.Any(), &draft.AttemptPickInput{
			LeagueID:      s.testChannelID,
			GameID:        s.game.ID,
			ParticipantID: s.testUserID,
			PlayerID:      "det-71",
		}).
		Return(&draft.AttemptPickOutput{
			Pick:  &models.Pick{ParticipantID: s.testUserID, PlayerID: "det-71", PlayerName: "Dylan Larkin", PlayerNumber: 71},
			State: &models.DraftState{Status: models.DraftStatusActive, CurrentTurn: "next-user"},
		}, nil)

	s.bot.handleInteraction(s.responder, s.command("pick", s.playerOption("#71")))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Contains(resp.Data.Content, "Dylan Larkin")
	s.Contains(resp.Data.Content, "<@next-user>")
	s.Zero(resp.Data.Flags & discordgo.MessageFlagsEphemeral)
}

func (s *DraftCommandTestSuite) TestPickRejectedIsEphemeral() {
	s.expectCurrentGame()
	s.expectRoster()
	s.mockDraftService.EXPECT().AttemptPick(gomock.Any(), gomock.Any()).Return(nil, tracker.ErrNotYourTurn)

	s.bot.handleInteraction(s.responder, s.command("pick", s.playerOption("raymond")))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Require().Len(resp.Data.Embeds, 1)
	s.Equal("It's not your turn to pick.", resp.Data.Embeds[0].Description)
	s.NotZero(resp.Data.Flags & discordgo.MessageFlagsEphemeral)
}

func (s *DraftCommandTestSuite) TestPickAmbiguousNameDoesNotPick() {
	s.expectCurrentGame()
	s.expectRoster()

	s.bot.handleInteraction(s.responder, s.command("pick", s.playerOption("alex")))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Contains(resp.Data.Embeds[0].Description, "Alex DeBrincat")
	s.Contains(resp.Data.Embeds[0].Description, "Alex Lyon")
}

func (s *DraftCommandTestSuite) TestStatus() {
	s.expectCurrentGame()
	s.mockDraftService.EXPECT().
		GetDraftState(gomock.Any(), &draft.GetDraftStateInput{LeagueID: s.testChannelID, GameID: s.game.ID}).
		Return(&draft.GetDraftStateOutput{State: &models.DraftState{
			Status:      models.DraftStatusActive,
			CurrentTurn: "B",
			Order: []*models.Participant{
				{ID: "A", DisplayName: "Alice"},
				{ID: "B", DisplayName: "Bob"},
			},
			Picks: []*models.Pick{{ParticipantID: "A", PlayerName: "Dylan Larkin", PlayerNumber: 71}},
		}}, nil)

	s.bot.handleInteraction(s.responder, s.command("status"))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	embed := resp.Data.Embeds[0]
	s.Equal("Red Wings vs Buffalo Sabres", embed.Title)
	s.Equal("<@B> is up.", embed.Description)
	s.Contains(embed.Fields[0].Value, "1. **Alice**: #71 Dylan Larkin")
	s.Contains(embed.Fields[0].Value, "2. **Bob** (on the clock)")
}

func (s *DraftCommandTestSuite) TestRosterOffersAvailablePlayers() {
	s.expectCurrentGame()
	s.expectRoster()
	s.mockDraftService.EXPECT().
		ListPicks(gomock.Any(), gomock.Any()).
		Return(&draft.ListPicksOutput{Picks: []*models.Pick{{PlayerID: "det-71"}}}, nil)

	s.bot.handleInteraction(s.responder, s.command("roster"))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Equal("3 of 4 players available", resp.Data.Embeds[0].Description)
	s.Require().Len(resp.Data.Components, 1)

	row := resp.Data.Components[0].(discordgo.ActionsRow)
	menu := row.Components[0].(discordgo.SelectMenu)
	s.Equal(SelectPickPrefix+s.game.ID, menu.CustomID)
	s.Len(menu.Options, 3)
}

func (s *DraftCommandTestSuite) TestPickFromMenu() {
	s.mockDraftService.EXPECT().
		AttemptPick(gomock.Any(), &draft.AttemptPickInput{
			LeagueID:      s.testChannelID,
			GameID:        s.game.ID,
			ParticipantID: s.testUserID,
			PlayerID:      "det-23",
		}).
		Return(&draft.AttemptPickOutput{
			Pick:  &models.Pick{ParticipantID: s.testUserID, PlayerName: "Lucas Raymond", PlayerNumber: 23},
			State: &models.DraftState{Status: models.DraftStatusComplete},
		}, nil)

	s.bot.handleInteraction(s.responder, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: s.testChannelID,
			User:      &discordgo.User{ID: s.testUserID},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: SelectPickPrefix + s.game.ID,
				Values:   []string{"det-23"},
			},
		},
	})

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Contains(resp.Data.Content, "The draft is complete.")
}

func (s *DraftCommandTestSuite) TestUnknownComponent() {
	s.bot.handleInteraction(s.responder, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: "something_else"},
		},
	})

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Equal("Error", resp.Data.Embeds[0].Title)
}

func (s *DraftCommandTestSuite) TestJoinUsesNickname() {
	s.mockDraftService.EXPECT().
		JoinLeague(gomock.Any(), &draft.JoinLeagueInput{
			LeagueID:    s.testChannelID,
			UserID:      s.testUserID,
			DisplayName: "Larkin Fan",
		}).
		Return(&draft.JoinLeagueOutput{Participant: &models.Participant{ID: s.testUserID, DisplayName: "Larkin Fan"}}, nil)

	s.bot.handleInteraction(s.responder, s.command("join"))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Contains(resp.Data.Content, "**Larkin Fan** joined")
}

func (s *DraftCommandTestSuite) TestLeaveNotMember() {
	s.mockDraftService.EXPECT().LeaveLeague(gomock.Any(), gomock.Any()).Return(nil, draft.ErrNotMember)

	s.bot.handleInteraction(s.responder, s.command("leave"))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Contains(resp.Data.Embeds[0].Description, "/draft join")
}

func (s *DraftCommandTestSuite) TestStoreUnavailable() {
	s.mockRosterService.EXPECT().CurrentGame(gomock.Any()).Return(nil, errors.New("sportradar down"))

	s.bot.handleInteraction(s.responder, s.command("status"))

	resp := s.responder.last()
	s.Require().NotNil(resp)
	s.Equal("Something went wrong. Try again later.", resp.Data.Embeds[0].Description)
}

func (s *DraftCommandTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrEmptyToken)

	_, err = New(&Config{Token: "t"})
	s.ErrorIs(err, ErrNilDraftService)

	_, err = New(&Config{Token: "t", DraftService: s.mockDraftService})
	s.ErrorIs(err, ErrNilRosterService)
}

func (s *DraftCommandTestSuite) TestResolvePlayer() {
	for query, expected := range map[string]string{
		"det-93":        "det-93",
		"23":            "det-23",
		"#34":           "det-34",
		"dylan larkin":  "det-71",
		"DeBrincat":     "det-93",
		"Steve Yzerman": "Steve Yzerman",
		"  lucas  ":     "det-23",
	} {
		id, err := resolvePlayer(s.players, query)
		s.Require().NoError(err, query)
		s.Equal(expected, id, query)
	}

	_, err := resolvePlayer(s.players, " ")
	s.Error(err)
}

func (s *DraftCommandTestSuite) TestErrorMessages() {
	for _, err := range []error{
		tracker.ErrUnknownPlayer,
		tracker.ErrPlayerAlreadyTaken,
		tracker.ErrAlreadyPicked,
		draft.ErrAlreadyMember,
		roster.ErrEmptyRoster,
		roster.ErrTeamNotInGame,
		roster.ErrNoUpcomingGame,
	} {
		_, unexpected := errorMessage(err)
		s.False(unexpected, err.Error())
	}

	_, unexpected := errorMessage(tracker.StoreUnavailable("list picks", errors.New("timeout")))
	s.True(unexpected)
}
