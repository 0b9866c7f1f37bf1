package arena

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/codearena/internal/services/arena Service

import "context"

// Service defines the interface for room orchestration
type Service interface {
	// CreateRoom creates a room with its creator as the first participant
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a participant to a room that has not started
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes a participant and releases their region
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// SelectChallenge starts a challenge and locks the room
	SelectChallenge(ctx context.Context, input *SelectChallengeInput) (*SelectChallengeOutput, error)

	// ClaimRegion gives a participant the next free region
	ClaimRegion(ctx context.Context, input *ClaimRegionInput) (*ClaimRegionOutput, error)

	// GetRegions returns the room's region assignments
	GetRegions(ctx context.Context, input *GetRegionsInput) (*GetRegionsOutput, error)

	// RecordContribution records an edit or chat message
	RecordContribution(ctx context.Context, input *RecordContributionInput) (*RecordContributionOutput, error)

	// RecordActiveTime adds minutes a participant spent actively working
	RecordActiveTime(ctx context.Context, input *RecordActiveTimeInput) (*RecordActiveTimeOutput, error)

	// SubmitSolution grades the buffer and scores the team
	SubmitSolution(ctx context.Context, input *SubmitSolutionInput) (*SubmitSolutionOutput, error)
}
