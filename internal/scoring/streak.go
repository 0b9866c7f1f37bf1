package scoring

import (
	"time"
)

// DateLayout is the calendar date format used for LastActiveDate
const DateLayout = "2006-01-02"

// DailyStreak is the slice of UserStats the daily streak machine owns
type DailyStreak struct {
	LastActiveDate  string
	DailyStreak     int
	BestDailyStreak int
	Consistency     int
}

// Today formats t as a calendar date in t's own location
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// AdvanceDailyStreak applies one day's activity to the streak state.
// Repeated calls on the same day are no-ops.
func AdvanceDailyStreak(state DailyStreak, today string) DailyStreak {
	if state.LastActiveDate == today {
		return state
	}

	next := state
	switch {
	case state.LastActiveDate == "":
		next.DailyStreak = 1
		next.BestDailyStreak = 1
		next.Consistency = 1
	case isYesterday(state.LastActiveDate, today):
		next.DailyStreak = state.DailyStreak + 1
		next.BestDailyStreak = max(state.BestDailyStreak, next.DailyStreak)
		next.Consistency = max(state.Consistency, next.DailyStreak)
	default:
		next.DailyStreak = 1
	}
	next.LastActiveDate = today
	return next
}

func isYesterday(last, today string) bool {
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return false
	}
	return t.AddDate(0, 0, -1).Format(DateLayout) == last
}
