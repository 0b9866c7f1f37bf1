package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/codearena/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/codearena/internal/models"
)

// Repository defines the interface for room persistence
type Repository interface {
	// SaveRoom persists a room
	SaveRoom(ctx context.Context, input *SaveRoomInput) error

	// GetRoom retrieves a room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// AddParticipant adds a participant to the room's roster
	AddParticipant(ctx context.Context, input *AddParticipantInput) error

	// RemoveParticipant removes a participant from the room's roster
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error

	// GetParticipants lists the room's roster
	GetParticipants(ctx context.Context, input *GetParticipantsInput) ([]models.Participant, error)

	// SaveRegions overwrites the region assignments
	SaveRegions(ctx context.Context, input *SaveRegionsInput) error

	// GetRegions retrieves the region assignments
	GetRegions(ctx context.Context, input *GetRegionsInput) ([]models.Region, error)

	// UpdateRegions applies a read-modify-write to the assignments inside an
	// optimistic transaction
	UpdateRegions(ctx context.Context, input *UpdateRegionsInput) (*UpdateRegionsOutput, error)

	// SetContribution raises a participant's contribution flags
	SetContribution(ctx context.Context, input *SetContributionInput) error

	// GetContributions retrieves every participant's contribution flags
	GetContributions(ctx context.Context, input *GetContributionsInput) (map[string]models.Contribution, error)
}
