package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	roomRepo "github.com/KirkDiggler/codearena/internal/repositories/room"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	statsService "github.com/KirkDiggler/codearena/internal/services/stats"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	arena      *ArenaCommand
	config     *Config
	logger     *zap.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	ArenaService arenaService.Service
	StatsService statsService.Service
	RoomRepo     roomRepo.Repository
	SnapshotRepo snapshotRepo.Repository

	Logger *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.ArenaService == nil || cfg.StatsService == nil {
		return nil, errors.New("arena and stats services cannot be nil")
	}
	if cfg.RoomRepo == nil || cfg.SnapshotRepo == nil {
		return nil, errors.New("room and snapshot repositories cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		arena:      NewArenaCommand(cfg.ArenaService, cfg.StatsService, cfg.RoomRepo, cfg.SnapshotRepo, logger),
		config:     cfg,
		logger:     logger,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.arena); err != nil {
		return fmt.Errorf("failed to register arena command: %w", err)
	}

	b.logger.Info("Bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("Failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err))
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. Commands are registered
// for the configured guild, or globally when none is set.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("Registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID))

	return nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("Error handling command", zap.String("command", name), zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("Error handling component interaction", zap.Error(err))
		}
	}
}

// handleComponentInteraction dispatches buttons and select menus
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	action, roomID := parseCustomID(i.MessageComponentData().CustomID)
	if roomID == "" {
		return RespondWithError(s, i, "This control no longer points at a room.")
	}

	switch action {
	case ButtonJoinRoom:
		return b.arena.HandleJoin(ctx, s, i, roomID)
	case SelectChallenge:
		return b.arena.HandleSelectChallenge(ctx, s, i, roomID)
	case ButtonSubmit:
		return b.arena.HandleSubmit(ctx, s, i, roomID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown control: %s", action))
	}
}
