package editor

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/autosave"
	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/reconcile"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	"github.com/KirkDiggler/codearena/internal/transport"
)

// DefaultPollInterval is how often the persisted snapshot and region
// assignments are re-read
const DefaultPollInterval = 3 * time.Second

const callTimeout = 5 * time.Second

// SessionError is returned by session operations
type SessionError string

func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      SessionError = "config cannot be nil"
	ErrMissingRoom    SessionError = "room ID cannot be empty"
	ErrMissingUser    SessionError = "participant ID cannot be empty"
	ErrMissingDeps    SessionError = "arena, snapshots, transport and widget are required"
	ErrAlreadyStarted SessionError = "session already started"
	ErrSessionClosed  SessionError = "session closed"
)

// Config holds one client's session dependencies
type Config struct {
	RoomID      string
	Participant models.Participant

	// PeerID identifies this client on the mesh; a random ID is used when empty
	PeerID string

	Arena     arenaService.Service
	Snapshots snapshotRepo.Repository
	Transport transport.Transport
	Widget    reconcile.Widget
	Clock     clock.Clock

	// PollInterval defaults to DefaultPollInterval
	PollInterval time.Duration

	// QuietPeriod and EchoWindow fall back to the autosave and reconcile
	// defaults
	QuietPeriod time.Duration
	EchoWindow  time.Duration

	OnReject func(reconcile.Rejection)
	OnStatus func(autosave.Status)
	OnPeers  func(map[string]transport.PeerInfo)
	OnChat   func(from, text string)

	Logger *zap.Logger
}

// messageKind tags a mesh envelope
type messageKind string

const (
	// kindUpdate carries CRDT operations
	kindUpdate messageKind = "update"

	// kindSync carries the sender's full state and asks peers to reply with
	// theirs
	kindSync messageKind = "sync"

	kindChat messageKind = "chat"
)

// envelope is the wire format exchanged between sessions
type envelope struct {
	Kind    messageKind `cbor:"1,keyasint"`
	Payload []byte      `cbor:"2,keyasint"`
}
