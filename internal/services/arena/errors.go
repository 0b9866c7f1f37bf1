package arena

// ArenaError is a custom error type for room orchestration errors
type ArenaError string

// Error implements the error interface
func (e ArenaError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound    ArenaError = "room not found"
	ErrRoomLocked      ArenaError = "room is locked; the challenge has already started"
	ErrNotOwner        ArenaError = "only the room owner can do that"
	ErrNotInRoom       ArenaError = "participant is not in the room"
	ErrNoChallenge     ArenaError = "no challenge has been selected"
	ErrNotContributed  ArenaError = "edit the code or chat before submitting"
	ErrInvalidInput    ArenaError = "invalid input"
	ErrUnknownKind     ArenaError = "unknown contribution kind"
	ErrNilConfig       ArenaError = "config cannot be nil"
	ErrNilRoomRepo     ArenaError = "room repository cannot be nil"
	ErrNilSnapshotRepo ArenaError = "snapshot repository cannot be nil"
	ErrNilStatsService ArenaError = "stats service cannot be nil"
)
