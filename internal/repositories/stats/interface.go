package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/codearena/internal/repositories/stats Repository

import (
	"context"

	"github.com/KirkDiggler/codearena/internal/models"
)

// Repository defines the interface for stats persistence
type Repository interface {
	// SaveUserStats overwrites a user's aggregate and updates the individual
	// leaderboard
	SaveUserStats(ctx context.Context, input *SaveUserStatsInput) error

	// GetUserStats retrieves a user's aggregate
	GetUserStats(ctx context.Context, input *GetUserStatsInput) (*models.UserStats, error)

	// SaveRoomStats overwrites a room's aggregate and updates the team
	// leaderboard
	SaveRoomStats(ctx context.Context, input *SaveRoomStatsInput) error

	// GetRoomStats retrieves a room's aggregate
	GetRoomStats(ctx context.Context, input *GetRoomStatsInput) (*models.RoomStats, error)

	// GetLeaderboard ranks users by individual score
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) ([]models.LeaderboardEntry, error)

	// GetTeamLeaderboard ranks teams by their best team score
	GetTeamLeaderboard(ctx context.Context, input *GetTeamLeaderboardInput) ([]models.TeamLeaderboardEntry, error)
}
