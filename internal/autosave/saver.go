// Package autosave debounces buffer changes into snapshot writes.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/metrics"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/repositories/snapshot"
)

// DefaultQuietPeriod is how long the buffer must stay unchanged before it is
// written
const DefaultQuietPeriod = 2 * time.Second

const writeTimeout = 10 * time.Second

// Status is the user-visible save indicator
type Status string

const (
	StatusSaved   Status = "saved"
	StatusSaving  Status = "saving"
	StatusUnsaved Status = "unsaved"
)

// SnapshotWriter persists the buffer
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, input *snapshot.SaveSnapshotInput) error
}

// Config holds the saver's dependencies
type Config struct {
	RoomID        string
	ParticipantID string
	Writer        SnapshotWriter
	Clock         clock.Clock

	// QuietPeriod defaults to DefaultQuietPeriod
	QuietPeriod time.Duration

	// Source returns the buffer to persist when a write fires. When nil the
	// text passed to the last Schedule is written.
	Source func() string

	// OnStatus is called after every status transition
	OnStatus func(Status)

	Logger *zap.Logger
}

// Saver writes the latest scheduled text once edits go quiet
type Saver struct {
	roomID        string
	participantID string
	writer        SnapshotWriter
	clock         clock.Clock
	quiet         time.Duration
	source        func() string
	onStatus      func(Status)
	logger        *zap.Logger

	mu         sync.Mutex
	text       string
	generation uint64
	dirty      bool
	saving     bool
	status     Status
	timer      clock.Timer
	closed     bool
}

// New creates a saver
func New(cfg *Config) (*Saver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Writer == nil {
		return nil, errors.New("snapshot writer cannot be nil")
	}
	if cfg.RoomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	quiet := cfg.QuietPeriod
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Saver{
		roomID:        cfg.RoomID,
		participantID: cfg.ParticipantID,
		writer:        cfg.Writer,
		clock:         clk,
		quiet:         quiet,
		source:        cfg.Source,
		onStatus:      cfg.OnStatus,
		logger:        logger.With(zap.String("room_id", cfg.RoomID)),
		status:        StatusSaved,
	}, nil
}

// Schedule records text as the latest buffer and restarts the quiet period
func (s *Saver) Schedule(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.text = text
	s.generation++
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.quiet, s.fire)
	changed := s.setStatusLocked(StatusUnsaved)
	s.mu.Unlock()

	s.notify(changed)
}

// Pending reports whether a local change has not reached persistence yet
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty || s.saving
}

// Status returns the current save indicator
func (s *Saver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Flush writes any pending text immediately
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.write(ctx)
}

// Close cancels the pending write. Later calls to Schedule are ignored.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Saver) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.write(ctx); err != nil {
		s.logger.Warn("Autosave failed", zap.Error(err))
	}
}

func (s *Saver) write(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty || s.saving {
		s.mu.Unlock()
		return nil
	}
	text := s.text
	generation := s.generation
	s.saving = true
	s.timer = nil
	changed := s.setStatusLocked(StatusSaving)
	s.mu.Unlock()
	s.notify(changed)

	if s.source != nil {
		text = s.source()
	}

	err := s.writer.SaveSnapshot(ctx, &snapshot.SaveSnapshotInput{
		Snapshot: &models.Snapshot{
			RoomID:    s.roomID,
			Text:      text,
			UpdatedBy: s.participantID,
			UpdatedAt: s.clock.Now(),
		},
	})

	savedLocally := errors.Is(err, snapshot.ErrSavedLocally)
	switch {
	case err == nil:
		metrics.AutosaveWrites.WithLabelValues(metrics.ResultSaved).Inc()
	case savedLocally:
		metrics.AutosaveWrites.WithLabelValues(metrics.ResultLocal).Inc()
		s.logger.Warn("Snapshot kept in local store", zap.Error(err))
	default:
		metrics.AutosaveWrites.WithLabelValues(metrics.ResultFailed).Inc()
	}

	s.mu.Lock()
	s.saving = false
	var next Status
	switch {
	case generation != s.generation:
		// A newer edit arrived mid-write; its own timer will save it
		next = StatusUnsaved
	case err == nil || savedLocally:
		s.dirty = false
		next = StatusSaved
	default:
		// Retried on the next edit or explicit flush
		next = StatusUnsaved
	}
	changed = s.setStatusLocked(next)
	s.mu.Unlock()
	s.notify(changed)

	if err != nil && !savedLocally {
		return err
	}
	return nil
}

func (s *Saver) setStatusLocked(status Status) bool {
	if s.status == status {
		return false
	}
	s.status = status
	return true
}

func (s *Saver) notify(changed bool) {
	if !changed || s.onStatus == nil {
		return
	}
	s.onStatus(s.Status())
}
