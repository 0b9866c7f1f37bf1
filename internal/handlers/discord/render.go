package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/codearena/internal/challenges"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/scoring"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
)

// Component custom IDs carry the room they act on after a colon
const (
	ButtonJoinRoom   = "arena_join"
	ButtonSubmit     = "arena_submit"
	SelectChallenge  = "arena_challenge"
	customIDSplitter = ":"
)

func customID(action, roomID string) string {
	return action + customIDSplitter + roomID
}

// parseCustomID splits a component custom ID into its action and room
func parseCustomID(id string) (action, roomID string) {
	action, roomID, _ = strings.Cut(id, customIDSplitter)
	return action, roomID
}

// renderRoom shows a room's roster and the controls that fit its state
func renderRoom(room *models.Room, participants []models.Participant) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		name := p.Name
		if room.IsOwner(p.ID) {
			name += " (owner)"
		}
		names = append(names, name)
	}
	roster := "Nobody yet"
	if len(names) > 0 {
		roster = strings.Join(names, "\n")
	}

	status := "Waiting for players"
	if room.Locked {
		status = "In progress"
	}

	embed := &discordgo.MessageEmbed{
		Title:       room.Name,
		Description: fmt.Sprintf("Room `%s`", room.ID),
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status, Inline: true},
			{Name: "Players", Value: fmt.Sprintf("%d", len(participants)), Inline: true},
			{Name: "Roster", Value: roster},
		},
	}

	if room.Challenge != "" {
		if c, err := challenges.Get(room.Challenge); err == nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Challenge",
				Value: fmt.Sprintf("**%s**\n%s", c.Title, c.Description),
			})
		}
	}

	if room.Locked {
		return embed, []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Submit",
					Style:    discordgo.SuccessButton,
					CustomID: customID(ButtonSubmit, room.ID),
				},
			}},
		}
	}

	return embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Join Room",
				Style:    discordgo.PrimaryButton,
				CustomID: customID(ButtonJoinRoom, room.ID),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			renderChallengeMenu(room.ID),
		}},
	}
}

// renderChallengeMenu lists the catalog for the owner to pick from
func renderChallengeMenu(roomID string) discordgo.SelectMenu {
	list := challenges.List()
	options := make([]discordgo.SelectMenuOption, 0, len(list))
	for _, c := range list {
		options = append(options, discordgo.SelectMenuOption{
			Label:       c.Title,
			Value:       string(c.ID),
			Description: fmt.Sprintf("%d XP", c.XPReward),
		})
	}

	return discordgo.SelectMenu{
		CustomID:    customID(SelectChallenge, roomID),
		Placeholder: "Owner: pick a challenge to start",
		Options:     options,
	}
}

func renderSubmission(out *arenaService.SubmitSolutionOutput) *discordgo.MessageEmbed {
	if !out.Correct {
		return &discordgo.MessageEmbed{
			Title:       "Not quite",
			Description: "The solution did not pass. The room streak is back to zero.",
			Color:       colorError,
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "Solved!",
		Description: fmt.Sprintf("+%d XP for %d participants", out.XPAwarded, len(out.Scored)),
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Room Streak", Value: fmt.Sprintf("%d", out.Streak), Inline: true},
		},
	}
}

func renderUserStats(stats *models.UserStats) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Stats", stats.UserName),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "XP", Value: fmt.Sprintf("%d", stats.XP), Inline: true},
			{Name: "Accuracy", Value: fmt.Sprintf("%d%% (%d/%d)", stats.Accuracy, stats.CorrectAnswers, stats.TotalQuestions), Inline: true},
			{Name: "Answer Streak", Value: fmt.Sprintf("%d", stats.Streak), Inline: true},
			{Name: "Collaboration", Value: fmt.Sprintf("%d/%d", stats.CollaborationScore, scoring.MaxCollaborationScore), Inline: true},
			{Name: "Daily Streak", Value: fmt.Sprintf("%d (best %d)", stats.DailyStreak, stats.BestDailyStreak), Inline: true},
			{Name: "Score", Value: fmt.Sprintf("%.1f", stats.IndividualScore), Inline: true},
		},
	}
}

func renderLeaderboard(entries []models.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Leaderboard",
		Color: colorInfo,
	}
	if len(entries) == 0 {
		embed.Description = "No scores yet. Solve a challenge to get on the board!"
		return embed
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s **%s** %.1f pts, %d XP\n", rankLabel(e.Rank), e.UserName, e.Score, e.XP)
	}
	embed.Description = b.String()
	return embed
}

func renderTeamLeaderboard(entries []models.TeamLeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Team Leaderboard",
		Color: colorInfo,
	}
	if len(entries) == 0 {
		embed.Description = "No teams yet."
		return embed
	}

	var b strings.Builder
	for _, e := range entries {
		names := make([]string, 0, len(e.Members))
		for _, m := range e.Members {
			names = append(names, m.Name)
		}
		fmt.Fprintf(&b, "%s **%s** %d/%d (%s)\n", rankLabel(e.Rank), e.RoomName, e.TeamScore, scoring.MaxTeamScore, strings.Join(names, ", "))
	}
	embed.Description = b.String()
	return embed
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// errorMessage turns service errors into something a player can act on
func errorMessage(err error) string {
	switch {
	case errors.Is(err, arenaService.ErrRoomNotFound):
		return "That room does not exist."
	case errors.Is(err, arenaService.ErrRoomLocked):
		return "That room has already started a challenge."
	case errors.Is(err, arenaService.ErrNotOwner):
		return "Only the room owner can do that."
	case errors.Is(err, arenaService.ErrNotInRoom):
		return "Join the room first."
	case errors.Is(err, arenaService.ErrNoChallenge):
		return "No challenge has been selected yet."
	case errors.Is(err, arenaService.ErrNotContributed):
		return "Edit the code or chat with your team before submitting."
	case errors.Is(err, challenges.ErrUnknownChallenge):
		return "Unknown challenge."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
