// Package reconcile keeps the editor widget, the shared replica and the
// persisted snapshot consistent with one writer at a time.
package reconcile

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/metrics"
)

// Controller arbitrates between local edits and trusted remote texts
type Controller struct {
	widget     Widget
	replica    Replica
	saver      Saver
	policy     Authorizer
	clock      clock.Clock
	echoWindow time.Duration
	onReject   func(Rejection)
	logger     *zap.Logger

	// local serializes local changes end to end
	local sync.Mutex

	mu        sync.Mutex
	state     applyState
	lastKnown string
	deferred  bool
	timer     clock.Timer
	closed    bool
}

// New creates a controller with an empty last known text
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Widget == nil || cfg.Replica == nil || cfg.Saver == nil || cfg.Policy == nil {
		return nil, errors.New("widget, replica, saver and policy are required")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	window := cfg.EchoWindow
	if window <= 0 {
		window = DefaultEchoWindow
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		widget:     cfg.Widget,
		replica:    cfg.Replica,
		saver:      cfg.Saver,
		policy:     cfg.Policy,
		clock:      clk,
		echoWindow: window,
		onReject:   cfg.OnReject,
		logger:     logger,
	}, nil
}

// HandleLocalChange processes a change event from the widget. Events that
// arrive while a remote write is in flight are echoes and are ignored.
func (c *Controller) HandleLocalChange(editorID, newText string) Result {
	if c.ignoreLocal(newText) {
		return Result{Outcome: OutcomeIgnored}
	}

	c.local.Lock()
	defer c.local.Unlock()

	c.mu.Lock()
	if c.closed || c.state == stateRemote || newText == c.lastKnown {
		c.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}
	oldText := c.lastKnown

	decision := c.policy.Authorize(editorID, oldText, newText)
	if !decision.Allowed {
		// The rollback is a forced write and gets the same echo suppression
		c.state = stateRemote
		c.mu.Unlock()

		metrics.ObserveLocalEdit(false)
		c.logger.Info("Rejected local change",
			zap.String("editor_id", editorID),
			zap.Ints("violations", decision.Violations))

		c.widget.SetText(oldText)
		c.armEchoWindow()

		if c.onReject != nil {
			c.onReject(Rejection{EditorID: editorID, Decision: decision})
		}
		return Result{Outcome: OutcomeRejected, Decision: decision}
	}

	c.lastKnown = newText
	c.state = stateLocal
	c.mu.Unlock()

	metrics.ObserveLocalEdit(true)
	c.policy.SetText(newText)
	c.replica.Replace(newText)
	c.saver.Schedule(newText)

	c.mu.Lock()
	if c.state == stateLocal {
		c.state = stateIdle
	}
	drain := c.takeDeferredLocked()
	c.mu.Unlock()

	if drain {
		c.drainReplica()
	}
	return Result{Outcome: OutcomeAccepted, Decision: decision}
}

// ignoreLocal filters echoes before waiting on another local change
func (c *Controller) ignoreLocal(newText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}
	if c.state == stateRemote {
		metrics.EchoSuppressed.Inc()
		return true
	}
	return newText == c.lastKnown
}

// ApplyReplicaUpdate writes the replica's text to the widget. When another
// writer is in flight the update is deferred and the replica is re-read once
// that writer finishes.
func (c *Controller) ApplyReplicaUpdate(text string) bool {
	return c.applyRemote(text, metrics.SourceReplica, false)
}

// ApplySnapshot writes a persisted snapshot to the widget unless local work
// is in flight or unsaved. An empty replica is seeded with the snapshot.
func (c *Controller) ApplySnapshot(text string) bool {
	return c.applyRemote(text, metrics.SourceSnapshot, true)
}

func (c *Controller) applyRemote(text, source string, fromSnapshot bool) bool {
	c.mu.Lock()
	if c.closed || text == c.lastKnown {
		c.mu.Unlock()
		return false
	}
	if c.state != stateIdle {
		if !fromSnapshot {
			c.deferred = true
			metrics.RemoteDeferred.Inc()
		}
		c.logger.Debug("Remote text deferred", zap.String("source", source), zap.Stringer("writer", c.state))
		c.mu.Unlock()
		return false
	}
	if fromSnapshot && c.saver.Pending() {
		c.mu.Unlock()
		return false
	}

	c.state = stateRemote
	c.lastKnown = text
	c.mu.Unlock()

	metrics.RemoteApplies.WithLabelValues(source).Inc()
	c.logger.Debug("Applying remote text", zap.String("source", source), zap.Int("length", len(text)))

	c.policy.SetText(text)
	if fromSnapshot && c.replica.Text() == "" {
		c.replica.Replace(text)
	}
	c.widget.SetText(text)
	c.armEchoWindow()
	return true
}

func (c *Controller) armEchoWindow() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.echoWindow, c.endRemote)
}

func (c *Controller) endRemote() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = stateIdle
	c.timer = nil
	drain := c.takeDeferredLocked()
	c.mu.Unlock()

	if drain {
		c.drainReplica()
	}
}

func (c *Controller) takeDeferredLocked() bool {
	if !c.deferred || c.state != stateIdle {
		return false
	}
	c.deferred = false
	return true
}

// drainReplica applies whatever the replica holds now, which covers every
// update deferred so far
func (c *Controller) drainReplica() {
	c.ApplyReplicaUpdate(c.replica.Text())
}

// LastKnownText is the text the controller believes the widget shows
func (c *Controller) LastKnownText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastKnown
}

// Applying reports whether a writer is in flight
func (c *Controller) Applying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != stateIdle
}

// Close stops the echo timer. Every later call is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
