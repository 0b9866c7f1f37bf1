// Package scoring turns raw activity counters into bounded scores. Every
// function here is pure: the result depends only on its arguments.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/codearena/internal/models"
)

const (
	// MaxCollaborationScore is the sum of the three collaboration caps
	MaxCollaborationScore = 85

	// MaxTeamScore is the sum of the three team caps
	MaxTeamScore = 100

	// streakCap bounds the streak contribution to the individual score
	streakCap = 50
)

// Accuracy is the rounded percentage of correct answers
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// CollaborationScore rewards early contribution more than repetition. Each
// term is capped on its own so no single signal dominates.
func CollaborationScore(edits, messages, minutes int) int {
	score := math.Min(math.Sqrt(nonNegative(edits))*8, 35) +
		math.Min(math.Sqrt(nonNegative(messages))*4, 25) +
		math.Min(nonNegative(minutes)*0.4, 25)
	return int(math.Round(score))
}

// TeamScore is the room-level equivalent of CollaborationScore
func TeamScore(edits, messages, minutes int) int {
	score := math.Min(math.Sqrt(nonNegative(edits))*5, 40) +
		math.Min(math.Sqrt(nonNegative(messages))*3, 30) +
		math.Min(nonNegative(minutes)*0.3, 30)
	return int(math.Round(score))
}

// IndividualScore ranks users on the leaderboard
func IndividualScore(stats *models.UserStats) float64 {
	if stats == nil {
		return 0
	}
	streak := stats.Streak
	if streak > streakCap {
		streak = streakCap
	}
	if streak < 0 {
		streak = 0
	}
	return 0.35*float64(stats.CollaborationScore) +
		0.35*float64(stats.Accuracy) +
		0.20*float64(stats.Consistency) +
		0.10*float64(streak)
}

// TeamKey identifies a team independent of roster order
func TeamKey(participantIDs []string) string {
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func nonNegative(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
