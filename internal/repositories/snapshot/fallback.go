package snapshot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/store/local"
)

const localKeyPrefix = "snapshot:"

// FallbackConfig wires a primary repository to a local store
type FallbackConfig struct {
	Primary Repository
	Local   *local.Store
	Logger  *zap.Logger
}

// fallbackRepository writes to the local store when the primary fails
type fallbackRepository struct {
	primary Repository
	local   *local.Store
	logger  *zap.Logger
}

// NewFallback creates a repository that degrades to the local store
func NewFallback(cfg *FallbackConfig) (*fallbackRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Primary == nil || cfg.Local == nil {
		return nil, errors.New("primary and local store are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &fallbackRepository{
		primary: cfg.Primary,
		local:   cfg.Local,
		logger:  logger,
	}, nil
}

// SaveSnapshot writes to the primary. When that fails the snapshot is kept
// locally and ErrSavedLocally is returned so callers can surface it.
func (r *fallbackRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	err := r.primary.SaveSnapshot(ctx, input)
	if err == nil {
		if input.Snapshot != nil {
			if delErr := r.local.Delete(localKeyPrefix + input.Snapshot.RoomID); delErr != nil {
				r.logger.Warn("Failed to clear local snapshot", zap.Error(delErr))
			}
		}
		return nil
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}

	r.logger.Warn("Primary snapshot write failed, saving locally",
		zap.String("room_id", input.Snapshot.RoomID),
		zap.Error(err))

	if localErr := r.local.Put(localKeyPrefix+input.Snapshot.RoomID, input.Snapshot); localErr != nil {
		return fmt.Errorf("failed to save snapshot locally after %v: %w", err, localErr)
	}
	return ErrSavedLocally
}

// GetSnapshot prefers whichever copy is newer
func (r *fallbackRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.Snapshot, error) {
	primary, err := r.primary.GetSnapshot(ctx, input)
	if err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		r.logger.Warn("Primary snapshot read failed, using local copy",
			zap.String("room_id", input.RoomID),
			zap.Error(err))
	}

	var saved models.Snapshot
	localErr := r.local.Get(localKeyPrefix+input.RoomID, &saved)
	if localErr != nil && !errors.Is(localErr, local.ErrNotFound) {
		r.logger.Warn("Local snapshot read failed", zap.Error(localErr))
	}
	hasLocal := localErr == nil

	switch {
	case primary != nil && hasLocal && saved.UpdatedAt.After(primary.UpdatedAt):
		return &saved, nil
	case primary != nil:
		return primary, nil
	case hasLocal:
		return &saved, nil
	case err != nil && !errors.Is(err, ErrSnapshotNotFound):
		return nil, err
	default:
		return nil, ErrSnapshotNotFound
	}
}
