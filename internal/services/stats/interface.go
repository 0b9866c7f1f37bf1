package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/codearena/internal/services/stats Service

import "context"

// Service defines the interface for stat recording and leaderboards
type Service interface {
	// RecordAnswer folds a graded submission into a user's stats
	RecordAnswer(ctx context.Context, input *RecordAnswerInput) (*RecordOutput, error)

	// RecordEdits adds accepted code edits
	RecordEdits(ctx context.Context, input *RecordEditsInput) (*RecordOutput, error)

	// RecordChat adds one chat message
	RecordChat(ctx context.Context, input *RecordChatInput) (*RecordOutput, error)

	// RecordActiveTime adds active minutes
	RecordActiveTime(ctx context.Context, input *RecordActiveTimeInput) (*RecordOutput, error)

	// UpdateRoomStats adds activity to a room and recomputes its team score
	UpdateRoomStats(ctx context.Context, input *UpdateRoomStatsInput) (*UpdateRoomStatsOutput, error)

	// GetUserStats returns a user's stats, defaults when none exist
	GetUserStats(ctx context.Context, input *GetUserStatsInput) (*GetUserStatsOutput, error)

	// GetLeaderboard ranks users
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetTeamLeaderboard ranks teams
	GetTeamLeaderboard(ctx context.Context, input *GetTeamLeaderboardInput) (*GetTeamLeaderboardOutput, error)
}
