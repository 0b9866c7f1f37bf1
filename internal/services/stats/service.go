package stats

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/models"
	statsRepo "github.com/KirkDiggler/codearena/internal/repositories/stats"
	"github.com/KirkDiggler/codearena/internal/scoring"
	"github.com/KirkDiggler/codearena/internal/store/local"
)

const (
	localUserPrefix = "user_stats:"
	localRoomPrefix = "room_stats:"
)

type service struct {
	repo   statsRepo.Repository
	local  *local.Store
	clock  clock.Clock
	logger *zap.Logger
}

// NewService creates a new stats service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repo:   cfg.StatsRepo,
		local:  cfg.Local,
		clock:  clk,
		logger: logger,
	}, nil
}

// RecordAnswer folds a graded submission into a user's stats
func (s *service) RecordAnswer(ctx context.Context, input *RecordAnswerInput) (*RecordOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	return s.record(ctx, input.UserID, input.UserName, func(stats *models.UserStats) *models.UserStats {
		return scoring.RecordAnswer(stats, input.IsCorrect, input.CurrentStreak, input.XP, s.clock.Now())
	})
}

// RecordEdits adds accepted code edits
func (s *service) RecordEdits(ctx context.Context, input *RecordEditsInput) (*RecordOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	return s.record(ctx, input.UserID, input.UserName, func(stats *models.UserStats) *models.UserStats {
		return scoring.RecordEdits(stats, input.Count, s.clock.Now())
	})
}

// RecordChat adds one chat message
func (s *service) RecordChat(ctx context.Context, input *RecordChatInput) (*RecordOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	return s.record(ctx, input.UserID, input.UserName, func(stats *models.UserStats) *models.UserStats {
		return scoring.RecordChat(stats, s.clock.Now())
	})
}

// RecordActiveTime adds active minutes
func (s *service) RecordActiveTime(ctx context.Context, input *RecordActiveTimeInput) (*RecordOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	return s.record(ctx, input.UserID, input.UserName, func(stats *models.UserStats) *models.UserStats {
		return scoring.RecordActiveTime(stats, input.Minutes, s.clock.Now())
	})
}

// record is a whole-record read-merge-write. Concurrent writers for the same
// user race and the last write wins.
func (s *service) record(ctx context.Context, userID, userName string, apply func(*models.UserStats) *models.UserStats) (*RecordOutput, error) {
	current := s.loadUser(ctx, userID, userName)

	next := apply(current)
	next.UserID = userID
	if userName != "" {
		next.UserName = userName
	}

	err := s.repo.SaveUserStats(ctx, &statsRepo.SaveUserStatsInput{Stats: next})
	if err == nil {
		s.clearLocal(localUserPrefix + userID)
		return &RecordOutput{Stats: next}, nil
	}

	s.logger.Warn("Failed to save user stats",
		zap.String("user_id", userID),
		zap.Error(err))

	if s.local == nil {
		return nil, fmt.Errorf("failed to save user stats: %w", err)
	}
	if localErr := s.local.Put(localUserPrefix+userID, next); localErr != nil {
		return nil, fmt.Errorf("failed to save user stats locally: %w", localErr)
	}

	return &RecordOutput{Stats: next, SavedLocally: true}, nil
}

// loadUser never fails: unreadable stats fall back to the local copy and
// then to defaults
func (s *service) loadUser(ctx context.Context, userID, userName string) *models.UserStats {
	remote, err := s.repo.GetUserStats(ctx, &statsRepo.GetUserStatsInput{UserID: userID})
	if err != nil && !errors.Is(err, statsRepo.ErrStatsNotFound) {
		s.logger.Warn("Failed to read user stats, using defaults",
			zap.String("user_id", userID),
			zap.Error(err))
		remote = nil
	}

	var saved models.UserStats
	hasLocal := s.readLocal(localUserPrefix+userID, &saved)

	switch {
	case remote != nil && hasLocal && saved.LastUpdated.After(remote.LastUpdated):
		return &saved
	case remote != nil:
		return remote
	case hasLocal:
		return &saved
	default:
		return scoring.NewUserStats(userID, userName)
	}
}

func (s *service) readLocal(key string, v interface{}) bool {
	if s.local == nil {
		return false
	}
	err := s.local.Get(key, v)
	if err != nil && !errors.Is(err, local.ErrNotFound) {
		s.logger.Warn("Failed to read local stats", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

func (s *service) clearLocal(key string) {
	if s.local == nil {
		return
	}
	if err := s.local.Delete(key); err != nil {
		s.logger.Warn("Failed to clear local stats", zap.String("key", key), zap.Error(err))
	}
}

// UpdateRoomStats adds activity to a room and recomputes its team score
func (s *service) UpdateRoomStats(ctx context.Context, input *UpdateRoomStatsInput) (*UpdateRoomStatsOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidRoomID
	}

	current, err := s.repo.GetRoomStats(ctx, &statsRepo.GetRoomStatsInput{RoomID: input.RoomID})
	if err != nil {
		if !errors.Is(err, statsRepo.ErrStatsNotFound) {
			s.logger.Warn("Failed to read room stats, using defaults",
				zap.String("room_id", input.RoomID),
				zap.Error(err))
		}
		var saved models.RoomStats
		if s.readLocal(localRoomPrefix+input.RoomID, &saved) {
			current = &saved
		} else {
			current = &models.RoomStats{RoomID: input.RoomID}
		}
	}

	next := *current
	if input.RoomName != "" {
		next.RoomName = input.RoomName
	}
	if input.Challenge != "" {
		next.Challenge = input.Challenge
	}
	if input.Participants != nil {
		next.Participants = input.Participants
	}
	next.TotalEdits += max(input.Edits, 0)
	next.TotalMessages += max(input.Messages, 0)
	next.TotalActiveTime += max(input.ActiveMinutes, 0)

	updated := scoring.RefreshRoomStats(&next, s.clock.Now())

	err = s.repo.SaveRoomStats(ctx, &statsRepo.SaveRoomStatsInput{Stats: updated})
	if err == nil {
		s.clearLocal(localRoomPrefix + input.RoomID)
		return &UpdateRoomStatsOutput{Stats: updated}, nil
	}

	s.logger.Warn("Failed to save room stats",
		zap.String("room_id", input.RoomID),
		zap.Error(err))

	if s.local == nil {
		return nil, fmt.Errorf("failed to save room stats: %w", err)
	}
	if localErr := s.local.Put(localRoomPrefix+input.RoomID, updated); localErr != nil {
		return nil, fmt.Errorf("failed to save room stats locally: %w", localErr)
	}

	return &UpdateRoomStatsOutput{Stats: updated, SavedLocally: true}, nil
}

// GetUserStats returns a user's stats, defaults when none exist
func (s *service) GetUserStats(ctx context.Context, input *GetUserStatsInput) (*GetUserStatsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	return &GetUserStatsOutput{
		Stats: s.loadUser(ctx, input.UserID, input.UserName),
	}, nil
}

// GetLeaderboard ranks users
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	entries, err := s.repo.GetLeaderboard(ctx, &statsRepo.GetLeaderboardInput{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return &GetLeaderboardOutput{Entries: entries}, nil
}

// GetTeamLeaderboard ranks teams
func (s *service) GetTeamLeaderboard(ctx context.Context, input *GetTeamLeaderboardInput) (*GetTeamLeaderboardOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	entries, err := s.repo.GetTeamLeaderboard(ctx, &statsRepo.GetTeamLeaderboardInput{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get team leaderboard: %w", err)
	}

	return &GetTeamLeaderboardOutput{Entries: entries}, nil
}
