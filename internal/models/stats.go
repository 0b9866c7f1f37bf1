package models

import (
	"time"
)

// UserStats is the durable per-identity aggregate
type UserStats struct {
	// UserID is the identity the stats belong to
	UserID string

	// UserName is the last known display name
	UserName string

	// XP is the total experience earned
	XP int

	// Accuracy is the derived percentage of correct answers
	Accuracy int

	// Streak is the best answer streak ever recorded
	Streak int

	// CollaborationScore is derived from edits, messages and active time
	CollaborationScore int

	// Consistency is derived from the daily streak
	Consistency int

	// IndividualScore is the cached leaderboard score
	IndividualScore float64

	TotalQuestions int
	CorrectAnswers int
	CodeEdits      int
	ChatMessages   int

	// ActiveTime is measured in minutes
	ActiveTime int

	DailyStreak     int
	BestDailyStreak int

	// LastActiveDate is a calendar date formatted as 2006-01-02
	LastActiveDate string

	// LastUpdated is when the record was last written
	LastUpdated time.Time
}

// RoomStats is the durable per-room aggregate shared by its participants
type RoomStats struct {
	RoomID   string
	RoomName string

	// Challenge is the challenge being worked on
	Challenge ChallengeID

	// Participants is a snapshot of the roster
	Participants []Participant

	TotalEdits    int
	TotalMessages int

	// TotalActiveTime is measured in minutes
	TotalActiveTime int

	// TeamScore is derived from the totals
	TeamScore int

	// TeamKey is the sorted participant ID join used to recognise a team
	TeamKey string

	CreatedAt    time.Time
	LastActivity time.Time
}

// LeaderboardEntry is one ranked individual
type LeaderboardEntry struct {
	// Rank is the 1-based position
	Rank int

	UserID   string
	UserName string
	Score    float64
	XP       int
}

// TeamLeaderboardEntry is one ranked team
type TeamLeaderboardEntry struct {
	// Rank is the 1-based position
	Rank int

	TeamKey   string
	RoomName  string
	Members   []Participant
	TeamScore int
}
