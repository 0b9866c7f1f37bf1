package snapshot

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
	snapshotKeyPrefix = "snapshot:"
)

// SnapshotError is returned by snapshot repositories
type SnapshotError string

func (e SnapshotError) Error() string {
	return string(e)
}

const (
	ErrSnapshotNotFound SnapshotError = "snapshot not found"
	ErrInvalidInput     SnapshotError = "input and room ID cannot be empty"
	ErrSavedLocally     SnapshotError = "snapshot saved to local fallback store"
)

// Config holds configuration for the Redis snapshot repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed snapshot repository
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

func snapshotKey(roomID string) string {
	return fmt.Sprintf("%s%s", snapshotKeyPrefix, roomID)
}

// SaveSnapshot persists the buffer as a single JSON value
func (r *redisRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Snapshot == nil || input.Snapshot.RoomID == "" {
		return ErrInvalidInput
	}

	snapshotJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(input.Snapshot.RoomID), snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot reads the persisted buffer
func (r *redisRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.Snapshot, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	snapshotJSON, err := r.client.Get(ctx, snapshotKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}
