package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/codearena/internal/models"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix         = "room:"
	participantsKeyPrefix = "room_participants:"
	regionsKeyPrefix      = "room_regions:"
	editorsKeyPrefix      = "room_editors:"
	chattersKeyPrefix     = "room_chatters:"

	maxRegionRetries = 10
)

// RoomError is returned by the room repository
type RoomError string

func (e RoomError) Error() string {
	return string(e)
}

const (
	ErrRoomNotFound    RoomError = "room not found"
	ErrInvalidInput    RoomError = "input and room ID cannot be empty"
	ErrRegionsConflict RoomError = "region update kept conflicting with other writers"
)

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
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

func key(prefix, roomID string) string {
	return fmt.Sprintf("%s%s", prefix, roomID)
}

// SaveRoom persists a room to Redis
func (r *redisRepository) SaveRoom(ctx context.Context, input *SaveRoomInput) error {
	if input == nil || input.Room == nil || input.Room.ID == "" {
		return ErrInvalidInput
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err := r.client.Set(ctx, key(roomKeyPrefix, input.Room.ID), roomJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	roomJSON, err := r.client.Get(ctx, key(roomKeyPrefix, input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

// AddParticipant stores the participant in the roster hash
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil || input.RoomID == "" || input.Participant.ID == "" {
		return ErrInvalidInput
	}

	participantJSON, err := json.Marshal(input.Participant)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	if err := r.client.HSet(ctx, key(participantsKeyPrefix, input.RoomID), input.Participant.ID, participantJSON).Err(); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

// RemoveParticipant drops the participant from the roster hash
func (r *redisRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error {
	if input == nil || input.RoomID == "" || input.ParticipantID == "" {
		return ErrInvalidInput
	}

	if err := r.client.HDel(ctx, key(participantsKeyPrefix, input.RoomID), input.ParticipantID).Err(); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	return nil
}

// GetParticipants returns the roster ordered by ID
func (r *redisRepository) GetParticipants(ctx context.Context, input *GetParticipantsInput) ([]models.Participant, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	values, err := r.client.HGetAll(ctx, key(participantsKeyPrefix, input.RoomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	participants := make([]models.Participant, 0, len(values))
	for id, raw := range values {
		var p models.Participant
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant %s: %w", id, err)
		}
		participants = append(participants, p)
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})

	return participants, nil
}

// SaveRegions overwrites the assignments
func (r *redisRepository) SaveRegions(ctx context.Context, input *SaveRegionsInput) error {
	if input == nil || input.RoomID == "" {
		return ErrInvalidInput
	}

	regionsJSON, err := json.Marshal(input.Regions)
	if err != nil {
		return fmt.Errorf("failed to marshal regions: %w", err)
	}

	if err := r.client.Set(ctx, key(regionsKeyPrefix, input.RoomID), regionsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save regions: %w", err)
	}

	return nil
}

// GetRegions returns the assignments, empty when none were saved
func (r *redisRepository) GetRegions(ctx context.Context, input *GetRegionsInput) ([]models.Region, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	return r.readRegions(ctx, r.client, key(regionsKeyPrefix, input.RoomID))
}

// stringGetter is satisfied by both the client and a WATCH transaction
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepository) readRegions(ctx context.Context, getter stringGetter, regionsKey string) ([]models.Region, error) {
	regionsJSON, err := getter.Get(ctx, regionsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return []models.Region{}, nil
		}
		return nil, fmt.Errorf("failed to get regions: %w", err)
	}

	var regions []models.Region
	if err := json.Unmarshal([]byte(regionsJSON), &regions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal regions: %w", err)
	}

	return regions, nil
}

// UpdateRegions runs input.Update under WATCH so two participants claiming
// at once cannot both take the same region
func (r *redisRepository) UpdateRegions(ctx context.Context, input *UpdateRegionsInput) (*UpdateRegionsOutput, error) {
	if input == nil || input.RoomID == "" || input.Update == nil {
		return nil, ErrInvalidInput
	}

	regionsKey := key(regionsKeyPrefix, input.RoomID)
	output := &UpdateRegionsOutput{}

	txf := func(tx *redis.Tx) error {
		regions, err := r.readRegions(ctx, tx, regionsKey)
		if err != nil {
			return err
		}

		changed := input.Update(regions)
		output.Regions = regions
		output.Changed = changed
		if !changed {
			return nil
		}

		regionsJSON, err := json.Marshal(regions)
		if err != nil {
			return fmt.Errorf("failed to marshal regions: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, regionsKey, regionsJSON, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxRegionRetries; i++ {
		err := r.client.Watch(ctx, txf, regionsKey)
		if err == nil {
			return output, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("failed to update regions: %w", err)
	}

	return nil, ErrRegionsConflict
}

// SetContribution adds the participant to the editor and chatter sets
func (r *redisRepository) SetContribution(ctx context.Context, input *SetContributionInput) error {
	if input == nil || input.RoomID == "" || input.ParticipantID == "" {
		return ErrInvalidInput
	}
	if !input.Edited && !input.Chatted {
		return nil
	}

	pipe := r.client.Pipeline()
	if input.Edited {
		pipe.SAdd(ctx, key(editorsKeyPrefix, input.RoomID), input.ParticipantID)
	}
	if input.Chatted {
		pipe.SAdd(ctx, key(chattersKeyPrefix, input.RoomID), input.ParticipantID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set contribution: %w", err)
	}

	return nil
}

// GetContributions merges the editor and chatter sets
func (r *redisRepository) GetContributions(ctx context.Context, input *GetContributionsInput) (map[string]models.Contribution, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	pipe := r.client.Pipeline()
	editorsCmd := pipe.SMembers(ctx, key(editorsKeyPrefix, input.RoomID))
	chattersCmd := pipe.SMembers(ctx, key(chattersKeyPrefix, input.RoomID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}

	contributions := make(map[string]models.Contribution)
	for _, id := range editorsCmd.Val() {
		c := contributions[id]
		c.ParticipantID = id
		c.HasEdited = true
		contributions[id] = c
	}
	for _, id := range chattersCmd.Val() {
		c := contributions[id]
		c.ParticipantID = id
		c.HasChatted = true
		contributions[id] = c
	}

	return contributions, nil
}
