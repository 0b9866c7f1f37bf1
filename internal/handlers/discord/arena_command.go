package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/models"
	roomRepo "github.com/KirkDiggler/codearena/internal/repositories/room"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	statsService "github.com/KirkDiggler/codearena/internal/services/stats"
)

const requestTimeout = 10 * time.Second

// ArenaCommand handles the /arena command
type ArenaCommand struct {
	BaseCommand
	arena     arenaService.Service
	stats     statsService.Service
	rooms     roomRepo.Repository
	snapshots snapshotRepo.Repository
	logger    *zap.Logger
}

// NewArenaCommand creates a new arena command handler
func NewArenaCommand(arena arenaService.Service, stats statsService.Service, rooms roomRepo.Repository, snapshots snapshotRepo.Repository, logger *zap.Logger) *ArenaCommand {
	roomOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "room",
		Description: "Room ID",
		Required:    true,
	}

	return &ArenaCommand{
		BaseCommand: BaseCommand{
			Name:        "arena",
			Description: "Collaborative coding challenges",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new room",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Room name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "room",
					Description: "Show a room",
					Options:     []*discordgo.ApplicationCommandOption{roomOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave a room and free your region",
					Options:     []*discordgo.ApplicationCommandOption{roomOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show your stats",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the top players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "teams",
					Description: "Show the top teams",
				},
			},
		},
		arena:     arena,
		stats:     stats,
		rooms:     rooms,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Handle processes a Discord interaction for the arena command
func (c *ArenaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sub := data.Options[0]
	switch sub.Name {
	case "create":
		return c.handleCreate(ctx, s, i, optionString(sub.Options, "name"))
	case "room":
		return c.showRoom(ctx, s, i, optionString(sub.Options, "room"))
	case "leave":
		return c.handleLeave(ctx, s, i, optionString(sub.Options, "room"))
	case "stats":
		return c.handleStats(ctx, s, i)
	case "leaderboard":
		return c.handleLeaderboard(ctx, s, i)
	case "teams":
		return c.handleTeams(ctx, s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range options {
		if o.Name == name {
			return o.StringValue()
		}
	}
	return ""
}

func (c *ArenaCommand) handleCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	user := interactionUser(i)
	out, err := c.arena.CreateRoom(ctx, &arenaService.CreateRoomInput{
		Name:    name,
		Creator: user,
	})
	if err != nil {
		c.logger.Error("Failed to create room", zap.String("user_id", user.ID), zap.Error(err))
		return RespondWithError(s, i, errorMessage(err))
	}

	embed, components := renderRoom(out.Room, []models.Participant{user})
	return RespondWithEmbed(s, i, embed, components)
}

func (c *ArenaCommand) showRoom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	room, err := c.rooms.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return RespondWithError(s, i, errorMessage(arenaService.ErrRoomNotFound))
		}
		return RespondWithError(s, i, errorMessage(err))
	}
	participants, err := c.rooms.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: roomID})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	embed, components := renderRoom(room, participants)
	return RespondWithEmbed(s, i, embed, components)
}

func (c *ArenaCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	user := interactionUser(i)
	out, err := c.arena.LeaveRoom(ctx, &arenaService.LeaveRoomInput{
		RoomID:        roomID,
		ParticipantID: user.ID,
	})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	message := "You left the room."
	if out.ReleasedRegion {
		message = "You left the room. Your region is free for the next player."
	}
	return RespondWithEphemeralMessage(s, i, message)
}

func (c *ArenaCommand) handleStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	out, err := c.stats.GetUserStats(ctx, &statsService.GetUserStatsInput{
		UserID:   user.ID,
		UserName: user.Name,
	})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}
	return RespondWithEphemeralEmbed(s, i, renderUserStats(out.Stats), nil)
}

func (c *ArenaCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.stats.GetLeaderboard(ctx, &statsService.GetLeaderboardInput{})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}
	return RespondWithEmbed(s, i, renderLeaderboard(out.Entries), nil)
}

func (c *ArenaCommand) handleTeams(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.stats.GetTeamLeaderboard(ctx, &statsService.GetTeamLeaderboardInput{})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}
	return RespondWithEmbed(s, i, renderTeamLeaderboard(out.Entries), nil)
}

// HandleJoin adds the clicking user to a room
func (c *ArenaCommand) HandleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	out, err := c.arena.JoinRoom(ctx, &arenaService.JoinRoomInput{
		RoomID:      roomID,
		Participant: interactionUser(i),
	})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	embed, components := renderRoom(out.Room, out.Participants)
	return updateMessage(s, i, embed, components)
}

// HandleSelectChallenge starts the picked challenge
func (c *ArenaCommand) HandleSelectChallenge(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return RespondWithError(s, i, "Pick a challenge.")
	}

	user := interactionUser(i)
	out, err := c.arena.SelectChallenge(ctx, &arenaService.SelectChallengeInput{
		RoomID:        roomID,
		ParticipantID: user.ID,
		ChallengeID:   models.ChallengeID(values[0]),
	})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	participants, err := c.rooms.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: roomID})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	embed, components := renderRoom(out.Room, participants)
	return updateMessage(s, i, embed, components)
}

// HandleSubmit grades the room's saved buffer
func (c *ArenaCommand) HandleSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, roomID string) error {
	snap, err := c.snapshots.GetSnapshot(ctx, &snapshotRepo.GetSnapshotInput{RoomID: roomID})
	if err != nil {
		return RespondWithError(s, i, "The code has not been saved yet.")
	}

	user := interactionUser(i)
	out, err := c.arena.SubmitSolution(ctx, &arenaService.SubmitSolutionInput{
		RoomID:        roomID,
		ParticipantID: user.ID,
		Code:          snap.Text,
	})
	if err != nil {
		return RespondWithError(s, i, errorMessage(err))
	}

	return RespondWithEmbed(s, i, renderSubmission(out), nil)
}

func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}
