package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	commandName = "draft"

	// SelectPickPrefix prefixes the custom ID of the roster pick menu; the game id follows
	SelectPickPrefix = "draft_pick:"

	// Discord select menus hold at most 25 options
	maxSelectOptions = 25

	commandTimeout = 10 * time.Second
)

// DraftCommand handles the /draft command. The channel is the league; the game is the roster
// service's current game.
type DraftCommand struct {
	BaseCommand
	draftService  draft.Service
	rosterService roster.Service
	logger        zerolog.Logger
}

// NewDraftCommand creates a new draft command handler
func NewDraftCommand(draftService draft.Service, rosterService roster.Service) *DraftCommand {
	return &DraftCommand{
		BaseCommand: BaseCommand{
			Name:        commandName,
			Description: "Pick a Red Wings player for tonight's game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the draft order and whose turn it is",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roster",
					Description: "Show tonight's roster and who is still available",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pick",
					Description: "Pick a player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "player",
							Description: "Player name, jersey number or id",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join this channel's league",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave this channel's league",
				},
			},
		},
		draftService:  draftService,
		rosterService: rosterService,
		logger:        log.With().Str("component", "discord").Logger(),
	}
}

// Handle processes a Discord interaction for the draft command
func (c *DraftCommand) Handle(s Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	leagueID := i.ChannelID
	userID, username := interactionUser(i)

	sub := data.Options[0]
	switch sub.Name {
	case "status":
		return c.handleStatus(ctx, s, i, leagueID)
	case "roster":
		return c.handleRoster(ctx, s, i, leagueID)
	case "pick":
		query := ""
		for _, opt := range sub.Options {
			if opt.Name == "player" {
				query = opt.StringValue()
			}
		}
		return c.handlePick(ctx, s, i, leagueID, userID, query)
	case "join":
		return c.handleJoin(ctx, s, i, leagueID, userID, username)
	case "leave":
		return c.handleLeave(ctx, s, i, leagueID, userID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

// ComponentPrefix implements ComponentHandler
func (c *DraftCommand) ComponentPrefix() string {
	return SelectPickPrefix
}

// HandleComponent picks the player chosen from the roster menu
func (c *DraftCommand) HandleComponent(s Responder, i *discordgo.InteractionCreate) error {
	data := i.MessageComponentData()
	gameID := strings.TrimPrefix(data.CustomID, SelectPickPrefix)
	if len(data.Values) == 0 || data.Values[0] == "" {
		return RespondWithEphemeralMessage(s, i, "No player selected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	userID, _ := interactionUser(i)
	return c.pick(ctx, s, i, i.ChannelID, gameID, userID, data.Values[0])
}

func (c *DraftCommand) currentGame(ctx context.Context) (*models.Game, error) {
	output, err := c.rosterService.CurrentGame(ctx)
	if err != nil {
		return nil, err
	}
	return output.Game, nil
}

func (c *DraftCommand) handleStatus(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID string) error {
	game, err := c.currentGame(ctx)
	if err != nil {
		return c.respondError(s, i, err)
	}

	output, err := c.draftService.GetDraftState(ctx, &draft.GetDraftStateInput{
		LeagueID: leagueID,
		GameID:   game.ID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderDraftState(game, output.State))
}

func (c *DraftCommand) handleRoster(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID string) error {
	game, err := c.currentGame(ctx)
	if err != nil {
		return c.respondError(s, i, err)
	}

	rosterOutput, err := c.rosterService.GetRoster(ctx, &roster.GetRosterInput{
		GameID: game.ID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	picksOutput, err := c.draftService.ListPicks(ctx, &draft.ListPicksInput{
		LeagueID: leagueID,
		GameID:   game.ID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	embed, available := renderRoster(game, rosterOutput.Players, picksOutput.Picks)
	if len(available) == 0 {
		return RespondWithEmbed(s, i, embed)
	}
	return RespondWithEmbed(s, i, embed, renderPickMenu(game.ID, available))
}

func (c *DraftCommand) handlePick(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID, userID, query string) error {
	game, err := c.currentGame(ctx)
	if err != nil {
		return c.respondError(s, i, err)
	}

	rosterOutput, err := c.rosterService.GetRoster(ctx, &roster.GetRosterInput{
		GameID: game.ID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	playerID, err := resolvePlayer(rosterOutput.Players, query)
	if err != nil {
		return RespondWithError(s, i, err.Error())
	}

	return c.pick(ctx, s, i, leagueID, game.ID, userID, playerID)
}

func (c *DraftCommand) pick(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID, gameID, userID, playerID string) error {
	output, err := c.draftService.AttemptPick(ctx, &draft.AttemptPickInput{
		LeagueID:      leagueID,
		GameID:        gameID,
		ParticipantID: userID,
		PlayerID:      playerID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithMessage(s, i, renderPickAnnouncement(output.Pick, output.State))
}

func (c *DraftCommand) handleJoin(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID, userID, username string) error {
	output, err := c.draftService.JoinLeague(ctx, &draft.JoinLeagueInput{
		LeagueID:    leagueID,
		UserID:      userID,
		DisplayName: username,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("**%s** joined the league and will pick last.", output.Participant.DisplayName))
}

func (c *DraftCommand) handleLeave(ctx context.Context, s Responder, i *discordgo.InteractionCreate, leagueID, userID string) error {
	if _, err := c.draftService.LeaveLeague(ctx, &draft.LeaveLeagueInput{
		LeagueID: leagueID,
		UserID:   userID,
	}); err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, "You left the league. Your past picks still count.")
}

func (c *DraftCommand) respondError(s Responder, i *discordgo.InteractionCreate, err error) error {
	message, unexpected := errorMessage(err)
	if unexpected {
		c.logger.Error().Err(err).Str("channel_id", i.ChannelID).Msg("Draft command failed")
	}
	return RespondWithError(s, i, message)
}

// resolvePlayer matches a roster player by id, jersey number or name. A query matching
// nothing is returned unchanged so the draft reports it as an unknown player.
func resolvePlayer(players []*models.Player, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("Tell me who to pick: a name, jersey number or player id")
	}

	for _, p := range players {
		if p.ID == query {
			return p.ID, nil
		}
	}

	if number, err := strconv.Atoi(strings.TrimPrefix(query, "#")); err == nil {
		for _, p := range players {
			if p.Number == number {
				return p.ID, nil
			}
		}
	}

	lower := strings.ToLower(query)
	var matches []*models.Player
	for _, p := range players {
		name := strings.ToLower(p.Name)
		if name == lower {
			return p.ID, nil
		}
		if strings.Contains(name, lower) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return query, nil
	case 1:
		return matches[0].ID, nil
	default:
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = fmt.Sprintf("%s (#%d)", p.Name, p.Number)
		}
		return "", fmt.Errorf("%q matches %s. Be more specific.", query, strings.Join(names, ", "))
	}
}
