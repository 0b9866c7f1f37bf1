package models

import (
	"time"
)

// Room represents a shared arena where a team works on one challenge
type Room struct {
	// ID is the unique identifier for the room
	ID string

	// Name is the display name of the room
	Name string

	// CreatorID is the participant ID of whoever created the room
	CreatorID string

	// Locked is set once a challenge is selected; no new participants may join
	Locked bool

	// Challenge is the currently active challenge, empty until one is selected
	Challenge ChallengeID

	// StartedAt is the global start timestamp of the session
	StartedAt time.Time

	// TimerStartedAt is when the challenge timer was started
	TimerStartedAt time.Time

	// CorrectStreak counts consecutive correct submissions in this room
	CorrectStreak int

	// CreatedAt is when the room was created
	CreatedAt time.Time

	// UpdatedAt is when the room was last updated
	UpdatedAt time.Time
}

// IsOwner reports whether the given participant created the room
func (r *Room) IsOwner(participantID string) bool {
	return r != nil && participantID != "" && r.CreatorID == participantID
}

// Participant is a member of a room's current roster
type Participant struct {
	// ID is the participant's identity
	ID string

	// Name is the display name of the participant
	Name string
}

// Contribution tracks whether a participant has taken part in a room
type Contribution struct {
	// ParticipantID is the identity the flags belong to
	ParticipantID string

	// HasEdited is set after the first accepted code edit
	HasEdited bool

	// HasChatted is set after the first chat message
	HasChatted bool
}

// Contributed reports whether either flag is set
func (c *Contribution) Contributed() bool {
	return c != nil && (c.HasEdited || c.HasChatted)
}

// Snapshot is the persisted copy of a room's code buffer
type Snapshot struct {
	// RoomID is the room the buffer belongs to
	RoomID string

	// Text is the full buffer contents
	Text string

	// UpdatedBy is the participant whose edit produced this snapshot
	UpdatedBy string

	// UpdatedAt is when the snapshot was written
	UpdatedAt time.Time
}
