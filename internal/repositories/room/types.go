package room

import "github.com/KirkDiggler/codearena/internal/models"

type SaveRoomInput struct {
	Room *models.Room
}

type GetRoomInput struct {
	RoomID string
}

type AddParticipantInput struct {
	RoomID      string
	Participant models.Participant
}

type RemoveParticipantInput struct {
	RoomID        string
	ParticipantID string
}

type GetParticipantsInput struct {
	RoomID string
}

type SaveRegionsInput struct {
	RoomID  string
	Regions []models.Region
}

type GetRegionsInput struct {
	RoomID string
}

// RegionUpdate mutates the current assignments in place and reports whether
// anything changed
type RegionUpdate func(regions []models.Region) bool

type UpdateRegionsInput struct {
	RoomID string
	Update RegionUpdate
}

type UpdateRegionsOutput struct {
	// Regions is the state after the update
	Regions []models.Region

	// Changed is false when the update was a no-op and nothing was written
	Changed bool
}

type SetContributionInput struct {
	RoomID        string
	ParticipantID string
	Edited        bool
	Chatted       bool
}

type GetContributionsInput struct {
	RoomID string
}
