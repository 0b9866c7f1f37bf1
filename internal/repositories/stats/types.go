package stats

import "github.com/KirkDiggler/codearena/internal/models"

type SaveUserStatsInput struct {
	Stats *models.UserStats
}

type GetUserStatsInput struct {
	UserID string
}

type SaveRoomStatsInput struct {
	Stats *models.RoomStats
}

type GetRoomStatsInput struct {
	RoomID string
}

type GetLeaderboardInput struct {
	// Limit defaults to 10
	Limit int
}

type GetTeamLeaderboardInput struct {
	// Limit defaults to 10
	Limit int
}
