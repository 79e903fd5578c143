package discord

import (
	"errors"
	"fmt"
	"strings"

	tracker "github.com/KirkDiggler/lightthelamp/internal/draft"
	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/bwmarrin/discordgo"
)

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func gameTitle(game *models.Game) string {
	if game.Opponent == "" {
		return "Red Wings draft"
	}
	return fmt.Sprintf("Red Wings vs %s", game.Opponent)
}

func playerLine(p *models.Player) string {
	line := fmt.Sprintf("#%d **%s** %s", p.Number, p.Name, p.Position)
	if p.Stats != nil && p.Position != "G" && p.Stats.Points > 0 {
		line += fmt.Sprintf(" (%dG %dA)", p.Stats.Goals, p.Stats.Assists)
	}
	return line
}

// renderDraftState renders the draft order, picks so far and whose turn it is
func renderDraftState(game *models.Game, state *models.DraftState) *discordgo.MessageEmbed {
	picked := make(map[string]*models.Pick, len(state.Picks))
	for _, p := range state.Picks {
		picked[p.ParticipantID] = p
	}

	var order strings.Builder
	for n, participant := range state.Order {
		fmt.Fprintf(&order, "%d. **%s**", n+1, participant.DisplayName)
		switch pick, ok := picked[participant.ID]; {
		case ok:
			fmt.Fprintf(&order, ": #%d %s", pick.PlayerNumber, pick.PlayerName)
		case participant.ID == state.CurrentTurn:
			order.WriteString(" (on the clock)")
		}
		order.WriteString("\n")
	}
	if order.Len() == 0 {
		order.WriteString("Nobody has joined yet. Use `/draft join`.")
	}

	description := "Draft complete. Enjoy the game!"
	color := colorGreen
	if !state.IsComplete() {
		description = fmt.Sprintf("%s is up.", mention(state.CurrentTurn))
		color = colorBlue
	}
	if len(state.Order) == 0 {
		description = "No participants"
	}

	return &discordgo.MessageEmbed{
		Title:       gameTitle(game),
		Description: description,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Draft Order",
				Value: order.String(),
			},
		},
	}
}

// renderRoster renders the roster and returns the players still available
func renderRoster(game *models.Game, players []*models.Player, picks []*models.Pick) (*discordgo.MessageEmbed, []*models.Player) {
	taken := make(map[string]bool, len(picks))
	for _, p := range picks {
		taken[p.PlayerID] = true
	}

	var available []*models.Player
	var availableLines, takenLines strings.Builder
	for _, p := range players {
		if taken[p.ID] {
			fmt.Fprintf(&takenLines, "~~%s~~\n", playerLine(p))
			continue
		}
		available = append(available, p)
		fmt.Fprintf(&availableLines, "%s\n", playerLine(p))
	}

	fields := []*discordgo.MessageEmbedField{}
	if availableLines.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Available", Value: availableLines.String()})
	}
	if takenLines.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Taken", Value: takenLines.String()})
	}

	return &discordgo.MessageEmbed{
		Title:       gameTitle(game),
		Description: fmt.Sprintf("%d of %d players available", len(available), len(players)),
		Color:       colorBlue,
		Fields:      fields,
	}, available
}

// renderPickMenu renders a select menu of available players
func renderPickMenu(gameID string, available []*models.Player) discordgo.MessageComponent {
	if len(available) > maxSelectOptions {
		available = available[:maxSelectOptions]
	}

	options := make([]discordgo.SelectMenuOption, len(available))
	for n, p := range available {
		options[n] = discordgo.SelectMenuOption{
			Label:       p.Name,
			Value:       p.ID,
			Description: fmt.Sprintf("#%d %s", p.Number, p.Position),
			Emoji: &discordgo.ComponentEmoji{
				Name: "🏒",
			},
		}
	}

	return discordgo.SelectMenu{
		CustomID:    SelectPickPrefix + gameID,
		Placeholder: "Pick a player",
		Options:     options,
	}
}

// renderPickAnnouncement announces a pick and who is next
func renderPickAnnouncement(pick *models.Pick, state *models.DraftState) string {
	msg := fmt.Sprintf("🚨 %s picked **#%d %s**!", mention(pick.ParticipantID), pick.PlayerNumber, pick.PlayerName)
	if state.IsComplete() {
		return msg + " The draft is complete."
	}
	return msg + fmt.Sprintf(" %s, you're up.", mention(state.CurrentTurn))
}

// errorMessage turns a service error into a message for the user. unexpected reports errors
// worth logging.
func errorMessage(err error) (message string, unexpected bool) {
	switch {
	case errors.Is(err, tracker.ErrNotYourTurn):
		return "It's not your turn to pick.", false
	case errors.Is(err, tracker.ErrUnknownPlayer):
		return "That player isn't on tonight's roster.", false
	case errors.Is(err, tracker.ErrPlayerAlreadyTaken):
		return "That player has already been picked.", false
	case errors.Is(err, tracker.ErrAlreadyPicked):
		return "You've already made your pick for this game.", false
	case errors.Is(err, tracker.ErrStoreUnavailable):
		return "The draft is unavailable right now. Try again in a moment.", true
	case errors.Is(err, draft.ErrAlreadyMember):
		return "You're already in this league.", false
	case errors.Is(err, draft.ErrNotMember):
		return "You're not in this league. Use `/draft join` first.", false
	case errors.Is(err, roster.ErrEmptyRoster),
		errors.Is(err, roster.ErrTeamNotInGame),
		errors.Is(err, roster.ErrUnknownGame):
		return "No roster is available for tonight's game yet.", false
	case errors.Is(err, roster.ErrNoUpcomingGame):
		return "There's no game on the schedule to draft for yet.", false
	default:
		return "Something went wrong. Try again later.", true
	}
}
