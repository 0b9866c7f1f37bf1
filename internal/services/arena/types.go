package arena

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/common/uuid"
	"github.com/KirkDiggler/codearena/internal/models"
	roomRepo "github.com/KirkDiggler/codearena/internal/repositories/room"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	statsService "github.com/KirkDiggler/codearena/internal/services/stats"
)

// ContributionKind distinguishes the events that make a participant eligible
// to submit
type ContributionKind string

const (
	ContributionEdit ContributionKind = "edit"
	ContributionChat ContributionKind = "chat"
)

// Config holds configuration for the arena service
type Config struct {
	RoomRepo     roomRepo.Repository
	SnapshotRepo snapshotRepo.Repository
	StatsService statsService.Service
	Clock        clock.Clock
	UUID         uuid.UUID
	Logger       *zap.Logger
}

type CreateRoomInput struct {
	Name    string
	Creator models.Participant
}

type CreateRoomOutput struct {
	Room *models.Room
}

type JoinRoomInput struct {
	RoomID      string
	Participant models.Participant
}

type JoinRoomOutput struct {
	Room *models.Room

	// IsOwner is true for the room's creator
	IsOwner bool

	Participants []models.Participant
}

type LeaveRoomInput struct {
	RoomID        string
	ParticipantID string
}

type LeaveRoomOutput struct {
	// ReleasedRegion is set when the participant held a region, which is
	// now free for the next newcomer
	ReleasedRegion bool
}

type SelectChallengeInput struct {
	RoomID        string
	ParticipantID string
	ChallengeID   models.ChallengeID
}

type SelectChallengeOutput struct {
	Room      *models.Room
	Challenge *models.Challenge
	Regions   []models.Region
}

type ClaimRegionInput struct {
	RoomID      string
	Participant models.Participant
}

type ClaimRegionOutput struct {
	// RegionID is the region the participant holds, empty when none was free
	RegionID string

	// Assigned is true when this call made the assignment
	Assigned bool

	Regions []models.Region
}

type GetRegionsInput struct {
	RoomID string
}

type GetRegionsOutput struct {
	Regions []models.Region
}

type RecordContributionInput struct {
	RoomID      string
	Participant models.Participant
	Kind        ContributionKind

	// Count is the number of accepted edits; chat messages always count one
	Count int
}

type RecordContributionOutput struct {
	Stats *models.UserStats
}

type RecordActiveTimeInput struct {
	RoomID      string
	Participant models.Participant
	Minutes     int
}

type RecordActiveTimeOutput struct {
	Stats *models.UserStats
}

type SubmitSolutionInput struct {
	RoomID        string
	ParticipantID string
	Code          string
}

type SubmitSolutionOutput struct {
	Correct bool

	// XPAwarded is what each contributing participant earned
	XPAwarded int

	// Streak is the room's consecutive correct submissions
	Streak int

	// Scored lists the participants whose stats were updated
	Scored []string
}
