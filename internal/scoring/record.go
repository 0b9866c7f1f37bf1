package scoring

import (
	"time"

	"github.com/KirkDiggler/codearena/internal/models"
)

// NewUserStats returns the defaults used for an identity with no history
func NewUserStats(userID, userName string) *models.UserStats {
	return &models.UserStats{
		UserID:   userID,
		UserName: userName,
	}
}

// RecordAnswer folds one graded answer into stats
func RecordAnswer(stats *models.UserStats, isCorrect bool, currentStreak, xpToAward int, now time.Time) *models.UserStats {
	next := copyStats(stats)
	next.TotalQuestions++
	if isCorrect {
		next.CorrectAnswers++
		next.XP += xpToAward
	}
	next.Streak = max(next.Streak, currentStreak)
	return refresh(next, now)
}

// RecordEdits adds accepted code edits
func RecordEdits(stats *models.UserStats, count int, now time.Time) *models.UserStats {
	next := copyStats(stats)
	if count > 0 {
		next.CodeEdits += count
	}
	return refresh(next, now)
}

// RecordChat adds one chat message
func RecordChat(stats *models.UserStats, now time.Time) *models.UserStats {
	next := copyStats(stats)
	next.ChatMessages++
	return refresh(next, now)
}

// RecordActiveTime adds active minutes
func RecordActiveTime(stats *models.UserStats, minutes int, now time.Time) *models.UserStats {
	next := copyStats(stats)
	if minutes > 0 {
		next.ActiveTime += minutes
	}
	return refresh(next, now)
}

// refresh advances the daily streak and recomputes every derived field
func refresh(stats *models.UserStats, now time.Time) *models.UserStats {
	streak := AdvanceDailyStreak(DailyStreak{
		LastActiveDate:  stats.LastActiveDate,
		DailyStreak:     stats.DailyStreak,
		BestDailyStreak: stats.BestDailyStreak,
		Consistency:     stats.Consistency,
	}, Today(now))

	stats.LastActiveDate = streak.LastActiveDate
	stats.DailyStreak = streak.DailyStreak
	stats.BestDailyStreak = streak.BestDailyStreak
	stats.Consistency = streak.Consistency

	stats.Accuracy = Accuracy(stats.CorrectAnswers, stats.TotalQuestions)
	stats.CollaborationScore = CollaborationScore(stats.CodeEdits, stats.ChatMessages, stats.ActiveTime)
	stats.IndividualScore = IndividualScore(stats)
	stats.LastUpdated = now
	return stats
}

// RefreshRoomStats recomputes the derived room fields
func RefreshRoomStats(stats *models.RoomStats, now time.Time) *models.RoomStats {
	next := *stats
	next.Participants = append([]models.Participant(nil), stats.Participants...)

	ids := make([]string, len(next.Participants))
	for i, p := range next.Participants {
		ids[i] = p.ID
	}
	next.TeamKey = TeamKey(ids)
	next.TeamScore = TeamScore(next.TotalEdits, next.TotalMessages, next.TotalActiveTime)
	next.LastActivity = now
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}
	return &next
}

func copyStats(stats *models.UserStats) *models.UserStats {
	if stats == nil {
		return &models.UserStats{}
	}
	cp := *stats
	return &cp
}
