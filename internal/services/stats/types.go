package stats

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/models"
	statsRepo "github.com/KirkDiggler/codearena/internal/repositories/stats"
	"github.com/KirkDiggler/codearena/internal/store/local"
)

// Config holds configuration for the stats service
type Config struct {
	StatsRepo statsRepo.Repository

	// Local keeps records that could not be written to the repository.
	// Optional; without it write failures are returned.
	Local *local.Store

	Clock  clock.Clock
	Logger *zap.Logger
}

type RecordAnswerInput struct {
	UserID   string
	UserName string

	IsCorrect bool

	// CurrentStreak is the room's consecutive correct count including this
	// answer
	CurrentStreak int

	// XP is awarded only when the answer is correct
	XP int
}

type RecordEditsInput struct {
	UserID   string
	UserName string
	Count    int
}

type RecordChatInput struct {
	UserID   string
	UserName string
}

type RecordActiveTimeInput struct {
	UserID   string
	UserName string
	Minutes  int
}

// RecordOutput is returned by every Record call
type RecordOutput struct {
	Stats *models.UserStats

	// SavedLocally is set when the repository write failed and the record was
	// kept in the local store
	SavedLocally bool
}

type UpdateRoomStatsInput struct {
	RoomID   string
	RoomName string

	// Challenge and Participants replace the stored values when set
	Challenge    models.ChallengeID
	Participants []models.Participant

	Edits         int
	Messages      int
	ActiveMinutes int
}

type UpdateRoomStatsOutput struct {
	Stats        *models.RoomStats
	SavedLocally bool
}

type GetUserStatsInput struct {
	UserID   string
	UserName string
}

type GetUserStatsOutput struct {
	Stats *models.UserStats
}

type GetLeaderboardInput struct {
	Limit int
}

type GetLeaderboardOutput struct {
	Entries []models.LeaderboardEntry
}

type GetTeamLeaderboardInput struct {
	Limit int
}

type GetTeamLeaderboardOutput struct {
	Entries []models.TeamLeaderboardEntry
}
