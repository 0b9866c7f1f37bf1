package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/codearena/internal/models"
)

const (
	// Key prefixes for Redis
	userStatsKeyPrefix = "user_stats:"
	roomStatsKeyPrefix = "room_stats:"
	teamRoomKeyPrefix  = "team_room:"
	leaderboardKey     = "leaderboard:individual"
	teamBoardKey       = "leaderboard:team"

	defaultLeaderboardLimit = 10
)

// StatsError is returned by the stats repository
type StatsError string

func (e StatsError) Error() string {
	return string(e)
}

const (
	ErrStatsNotFound StatsError = "stats not found"
	ErrInvalidInput  StatsError = "input and ID cannot be empty"
)

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveUserStats writes the record and its leaderboard score together
func (r *redisRepository) SaveUserStats(ctx context.Context, input *SaveUserStatsInput) error {
	if input == nil || input.Stats == nil || input.Stats.UserID == "" {
		return ErrInvalidInput
	}

	statsJSON, err := json.Marshal(input.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal user stats: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userStatsKeyPrefix+input.Stats.UserID, statsJSON, 0)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  input.Stats.IndividualScore,
		Member: input.Stats.UserID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}

	return nil
}

// GetUserStats reads a user's record
func (r *redisRepository) GetUserStats(ctx context.Context, input *GetUserStatsInput) (*models.UserStats, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	statsJSON, err := r.client.Get(ctx, userStatsKeyPrefix+input.UserID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	var stats models.UserStats
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user stats: %w", err)
	}

	return &stats, nil
}

// SaveRoomStats writes the record and raises the team's best score
func (r *redisRepository) SaveRoomStats(ctx context.Context, input *SaveRoomStatsInput) error {
	if input == nil || input.Stats == nil || input.Stats.RoomID == "" {
		return ErrInvalidInput
	}

	statsJSON, err := json.Marshal(input.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal room stats: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, roomStatsKeyPrefix+input.Stats.RoomID, statsJSON, 0)
	if input.Stats.TeamKey != "" {
		pipe.ZAddArgs(ctx, teamBoardKey, redis.ZAddArgs{
			GT: true,
			Members: []redis.Z{{
				Score:  float64(input.Stats.TeamScore),
				Member: input.Stats.TeamKey,
			}},
		})
		pipe.Set(ctx, teamRoomKeyPrefix+input.Stats.TeamKey, input.Stats.RoomID, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save room stats: %w", err)
	}

	return nil
}

// GetRoomStats reads a room's record
func (r *redisRepository) GetRoomStats(ctx context.Context, input *GetRoomStatsInput) (*models.RoomStats, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	statsJSON, err := r.client.Get(ctx, roomStatsKeyPrefix+input.RoomID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get room stats: %w", err)
	}

	var stats models.RoomStats
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room stats: %w", err)
	}

	return &stats, nil
}

func limitOrDefault(limit int) int64 {
	if limit <= 0 {
		return defaultLeaderboardLimit
	}
	return int64(limit)
}

// GetLeaderboard returns the top users with their names and XP
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) ([]models.LeaderboardEntry, error) {
	limit := defaultLeaderboardLimit
	if input != nil {
		limit = int(limitOrDefault(input.Limit))
	}

	ranked, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	if len(ranked) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	keys := make([]string, len(ranked))
	for i, z := range ranked {
		keys[i] = userStatsKeyPrefix + z.Member.(string)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard stats: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, z := range ranked {
		entry := models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: z.Member.(string),
			Score:  z.Score,
		}
		if raw, ok := values[i].(string); ok {
			var stats models.UserStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				entry.UserName = stats.UserName
				entry.XP = stats.XP
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetTeamLeaderboard returns the top teams with the roster of their latest
// room
func (r *redisRepository) GetTeamLeaderboard(ctx context.Context, input *GetTeamLeaderboardInput) ([]models.TeamLeaderboardEntry, error) {
	limit := defaultLeaderboardLimit
	if input != nil {
		limit = int(limitOrDefault(input.Limit))
	}

	ranked, err := r.client.ZRevRangeWithScores(ctx, teamBoardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get team leaderboard: %w", err)
	}

	entries := make([]models.TeamLeaderboardEntry, 0, len(ranked))
	for i, z := range ranked {
		teamKey := z.Member.(string)
		entry := models.TeamLeaderboardEntry{
			Rank:      i + 1,
			TeamKey:   teamKey,
			TeamScore: int(z.Score),
		}

		roomID, err := r.client.Get(ctx, teamRoomKeyPrefix+teamKey).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("failed to get team room: %w", err)
		}
		if roomID != "" {
			room, err := r.GetRoomStats(ctx, &GetRoomStatsInput{RoomID: roomID})
			if err != nil && !errors.Is(err, ErrStatsNotFound) {
				return nil, err
			}
			if room != nil {
				entry.RoomName = room.RoomName
				entry.Members = room.Participants
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
