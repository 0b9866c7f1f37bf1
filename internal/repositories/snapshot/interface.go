package snapshot

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/codearena/internal/repositories/snapshot Repository

import (
	"context"

	"github.com/KirkDiggler/codearena/internal/models"
)

// Repository defines the interface for the persisted code buffer
type Repository interface {
	// SaveSnapshot overwrites the room's persisted buffer
	SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error

	// GetSnapshot retrieves the room's persisted buffer
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.Snapshot, error)
}
