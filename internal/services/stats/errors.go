package stats

// StatsError is a custom error type for stats-related errors
type StatsError string

// Error implements the error interface
func (e StatsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     StatsError = "config cannot be nil"
	ErrNilStatsRepo  StatsError = "stats repository cannot be nil"
	ErrInvalidUserID StatsError = "user ID cannot be empty"
	ErrInvalidRoomID StatsError = "room ID cannot be empty"
)
