package reconcile

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/regions"
)

// DefaultEchoWindow is how long change events are suppressed after a remote
// write to the widget
const DefaultEchoWindow = 50 * time.Millisecond

// applyState tracks which writer currently owns the buffer
type applyState int

const (
	stateIdle applyState = iota
	stateLocal
	stateRemote
)

func (s applyState) String() string {
	switch s {
	case stateLocal:
		return "local"
	case stateRemote:
		return "remote"
	default:
		return "idle"
	}
}

// Outcome describes what happened to a local change
type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// Result is returned by HandleLocalChange
type Result struct {
	Outcome Outcome

	// Decision is set for accepted and rejected changes
	Decision regions.Decision
}

// Rejection is passed to Config.OnReject so the UI can explain a rollback
type Rejection struct {
	EditorID string
	Decision regions.Decision
}

// Config holds the controller's collaborators
type Config struct {
	Widget  Widget
	Replica Replica
	Saver   Saver
	Policy  Authorizer
	Clock   clock.Clock

	// EchoWindow defaults to DefaultEchoWindow
	EchoWindow time.Duration

	// OnReject is called after a rejected change has been rolled back
	OnReject func(Rejection)

	Logger *zap.Logger
}
