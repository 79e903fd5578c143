// Package discord runs the draft as a Discord slash command. Each channel is a league.
package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BotError is a custom error type for bot construction errors
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        BotError = "config cannot be nil"
	ErrEmptyToken       BotError = "token cannot be empty"
	ErrNilDraftService  BotError = "draft service cannot be nil"
	ErrNilRosterService BotError = "roster service cannot be nil"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	components []ComponentHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	DraftService  draft.Service
	RosterService roster.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}
	if cfg.DraftService == nil {
		return nil, ErrNilDraftService
	}
	if cfg.RosterService == nil {
		return nil, ErrNilRosterService
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     log.With().Str("component", "discord").Logger(),
	}

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.handleInteraction(s, i)
	})

	return bot, nil
}

// Start opens the Discord connection and registers the draft command
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	draftCmd := NewDraftCommand(b.config.DraftService, b.config.RosterService)
	if err := b.RegisterCommand(draftCmd); err != nil {
		return fmt.Errorf("failed to register draft command: %w", err)
	}

	b.logger.Info().Msg("Discord bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("Failed to delete command")
		} else {
			b.logger.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to the session user once connected
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. Commands are registered for the
// configured guild, or globally when there is none.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.addCommand(cmd)
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("Registered command")
	return nil
}

func (b *Bot) addCommand(cmd CommandHandler) {
	b.commands[cmd.GetName()] = cmd
	if ch, ok := cmd.(ComponentHandler); ok {
		b.components = append(b.components, ch)
	}
}

// handleInteraction routes slash commands by name and components by custom ID prefix
func (b *Bot) handleInteraction(s Responder, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return
		}
		if err := h.Handle(s, i); err != nil {
			b.logger.Error().Err(err).Str("command", name).Msg("Error handling command")
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for _, h := range b.components {
			if !strings.HasPrefix(customID, h.ComponentPrefix()) {
				continue
			}
			if err := h.HandleComponent(s, i); err != nil {
				b.logger.Error().Err(err).Str("custom_id", customID).Msg("Error handling component interaction")
			}
			return
		}
		if err := RespondWithError(s, i, fmt.Sprintf("Unknown component: %s", customID)); err != nil {
			b.logger.Error().Err(err).Msg("Failed to respond to component interaction")
		}
	}
}
