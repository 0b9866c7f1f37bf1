// Package editor runs one client's view of an arena room. It keeps the local
// editor, the shared CRDT buffer, the persisted snapshot and the region
// assignments in step.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/autosave"
	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/common/uuid"
	"github.com/KirkDiggler/codearena/internal/crdt"
	"github.com/KirkDiggler/codearena/internal/metrics"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/reconcile"
	"github.com/KirkDiggler/codearena/internal/regions"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	"github.com/KirkDiggler/codearena/internal/transport"
)

// Session is one participant's connection to a room
type Session struct {
	roomID       string
	participant  models.Participant
	peerID       string
	arena        arenaService.Service
	snapshots    snapshotRepo.Repository
	transport    transport.Transport
	clock        clock.Clock
	pollInterval time.Duration
	onPeers      func(map[string]transport.PeerInfo)
	onChat       func(from, text string)
	logger       *zap.Logger

	doc        *crdt.Doc
	policy     *regions.Policy
	saver      *autosave.Saver
	controller *reconcile.Controller
	cron       *cron.Cron

	mu           sync.Mutex
	conn         transport.Conn
	peers        map[string]transport.PeerInfo
	pendingEdits int
	// active is set by an accepted edit or chat since the last tick
	active     bool
	lastTick   time.Time
	activeTime time.Duration
	started    bool
	closed     bool
}

// New builds a session. Nothing touches the network until Start.
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomID == "" {
		return nil, ErrMissingRoom
	}
	if cfg.Participant.ID == "" {
		return nil, ErrMissingUser
	}
	if cfg.Arena == nil || cfg.Snapshots == nil || cfg.Transport == nil || cfg.Widget == nil {
		return nil, ErrMissingDeps
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	peerID := cfg.PeerID
	if peerID == "" {
		peerID = uuid.New().NewUUID()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(
		zap.String("room_id", cfg.RoomID),
		zap.String("participant_id", cfg.Participant.ID))

	s := &Session{
		roomID:       cfg.RoomID,
		participant:  cfg.Participant,
		peerID:       peerID,
		arena:        cfg.Arena,
		snapshots:    cfg.Snapshots,
		transport:    cfg.Transport,
		clock:        clk,
		pollInterval: interval,
		onPeers:      cfg.OnPeers,
		onChat:       cfg.OnChat,
		logger:       logger,
		doc:          crdt.NewDoc(peerID),
		policy:       regions.NewPolicy(nil),
		peers:        map[string]transport.PeerInfo{},
	}

	saver, err := autosave.New(&autosave.Config{
		RoomID:        cfg.RoomID,
		ParticipantID: cfg.Participant.ID,
		Writer:        cfg.Snapshots,
		Clock:         clk,
		QuietPeriod:   cfg.QuietPeriod,
		Source: func() string {
			return s.controller.LastKnownText()
		},
		OnStatus: cfg.OnStatus,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create saver: %w", err)
	}
	s.saver = saver

	controller, err := reconcile.New(&reconcile.Config{
		Widget: cfg.Widget,
		Replica: &replica{
			doc:     s.doc,
			publish: s.publishUpdate,
		},
		Saver:      saver,
		Policy:     s.policy,
		Clock:      clk,
		EchoWindow: cfg.EchoWindow,
		OnReject:   cfg.OnReject,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	s.controller = controller

	s.cron = cron.New(
		cron.WithLogger(cronLogger{sugar: logger.Sugar()}),
		cron.WithChain(
			cron.Recover(cronLogger{sugar: logger.Sugar()}),
			cron.SkipIfStillRunning(cronLogger{sugar: logger.Sugar()}),
		),
	)

	return s, nil
}

// Start joins the mesh, loads the persisted buffer and region assignments and
// begins polling. A transport failure leaves the session editing solo.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.lastTick = s.clock.Now()
	s.mu.Unlock()

	s.connect(ctx)

	// Peers answer the sync before the snapshot is read, so an empty replica
	// is only seeded when nobody else holds the buffer
	s.loadSnapshot(ctx)
	s.syncRegions(ctx)

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.pollInterval), s.poll); err != nil {
		return fmt.Errorf("failed to schedule poll: %w", err)
	}
	s.cron.Start()

	s.logger.Info("Session started", zap.String("peer_id", s.peerID))
	return nil
}

func (s *Session) connect(ctx context.Context) {
	conn, err := s.transport.Connect(ctx, &transport.ConnectInput{
		Channel: transport.ChannelForRoom(s.roomID),
		Peer: transport.PeerInfo{
			ID:     s.peerID,
			Name:   s.participant.Name,
			UserID: s.participant.ID,
		},
	})
	if err != nil {
		s.logger.Warn("Transport unavailable, editing solo", zap.Error(err))
		return
	}

	conn.OnMessage(s.handleMessage)
	conn.OnPeersChanged(s.handlePeers)

	s.mu.Lock()
	s.conn = conn
	s.peers = conn.Peers()
	s.mu.Unlock()

	s.publish(kindSync, s.doc.State())
}

func (s *Session) connection() transport.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) publishUpdate(u crdt.Update) {
	if u.Empty() {
		return
	}
	s.publish(kindUpdate, u)
}

func (s *Session) publish(kind messageKind, u crdt.Update) {
	payload, err := crdt.EncodeUpdate(u)
	if err != nil {
		s.logger.Error("Failed to encode update", zap.Error(err))
		return
	}
	s.send(kind, payload)
}

func (s *Session) send(kind messageKind, payload []byte) {
	conn := s.connection()
	if conn == nil {
		return
	}

	data, err := crdt.Marshal(envelope{Kind: kind, Payload: payload})
	if err != nil {
		s.logger.Error("Failed to encode envelope", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := conn.Broadcast(ctx, data); err != nil {
		s.logger.Warn("Broadcast failed", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	metrics.PeerMessages.WithLabelValues("out").Inc()
}

func (s *Session) handleMessage(from string, data []byte) {
	metrics.PeerMessages.WithLabelValues("in").Inc()

	var env envelope
	if err := crdt.Unmarshal(data, &env); err != nil {
		s.logger.Warn("Dropping malformed message", zap.String("from", from), zap.Error(err))
		return
	}

	switch env.Kind {
	case kindUpdate, kindSync:
		u, err := crdt.DecodeUpdate(env.Payload)
		if err != nil {
			s.logger.Warn("Dropping malformed update", zap.String("from", from), zap.Error(err))
			return
		}
		if s.doc.Apply(u) {
			s.controller.ApplyReplicaUpdate(s.doc.Text())
		}
		if env.Kind == kindSync {
			s.publish(kindUpdate, s.doc.State())
		}
	case kindChat:
		if s.onChat != nil {
			s.onChat(from, string(env.Payload))
		}
	default:
		s.logger.Debug("Ignoring message", zap.String("kind", string(env.Kind)))
	}
}

func (s *Session) handlePeers(peers map[string]transport.PeerInfo) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.peers = peers
	s.mu.Unlock()

	if s.onPeers != nil {
		s.onPeers(peers)
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	s.syncRegions(ctx)
}

func (s *Session) loadSnapshot(ctx context.Context) {
	snap, err := s.snapshots.GetSnapshot(ctx, &snapshotRepo.GetSnapshotInput{RoomID: s.roomID})
	if err != nil {
		if !errors.Is(err, snapshotRepo.ErrSnapshotNotFound) {
			s.logger.Warn("Failed to read snapshot", zap.Error(err))
		}
		return
	}
	s.controller.ApplySnapshot(snap.Text)
}

// syncRegions refreshes the assignments and claims a region when this
// participant holds none
func (s *Session) syncRegions(ctx context.Context) {
	out, err := s.arena.GetRegions(ctx, &arenaService.GetRegionsInput{RoomID: s.roomID})
	if err != nil {
		s.logger.Warn("Failed to read regions", zap.Error(err))
		return
	}
	s.policy.SetRegions(out.Regions)

	if len(out.Regions) == 0 {
		return
	}
	if _, held := s.policy.RegionFor(s.participant.ID); held {
		return
	}

	claimed, err := s.arena.ClaimRegion(ctx, &arenaService.ClaimRegionInput{
		RoomID:      s.roomID,
		Participant: s.participant,
	})
	if err != nil {
		s.logger.Warn("Failed to claim region", zap.Error(err))
		return
	}
	s.policy.SetRegions(claimed.Regions)
}

func (s *Session) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := s.flushEdits(ctx); err != nil {
		s.logger.Warn("Failed to record edits", zap.Error(err))
	}
	if err := s.flushActiveTime(ctx); err != nil {
		s.logger.Warn("Failed to record active time", zap.Error(err))
	}

	// With peers connected the replica already holds the merged buffer; the
	// snapshot only serves initial load and solo editing
	if !s.meshed() || s.doc.Text() == "" {
		s.loadSnapshot(ctx)
	}
	s.syncRegions(ctx)
}

// meshed reports whether another peer shares the replica
func (s *Session) meshed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return false
	}
	for id := range s.peers {
		if id != s.peerID {
			return true
		}
	}
	return false
}

// flushActiveTime credits the time since the last tick when the participant
// edited or chatted during it. Partial minutes carry over.
func (s *Session) flushActiveTime(ctx context.Context) error {
	now := s.clock.Now()

	s.mu.Lock()
	if s.active {
		s.activeTime += now.Sub(s.lastTick)
	}
	s.active = false
	s.lastTick = now
	minutes := int(s.activeTime / time.Minute)
	s.activeTime -= time.Duration(minutes) * time.Minute
	s.mu.Unlock()

	if minutes == 0 {
		return nil
	}

	_, err := s.arena.RecordActiveTime(ctx, &arenaService.RecordActiveTimeInput{
		RoomID:      s.roomID,
		Participant: s.participant,
		Minutes:     minutes,
	})
	if err != nil {
		s.mu.Lock()
		s.activeTime += time.Duration(minutes) * time.Minute
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Session) flushEdits(ctx context.Context) error {
	s.mu.Lock()
	count := s.pendingEdits
	s.pendingEdits = 0
	s.mu.Unlock()

	if count == 0 {
		return nil
	}

	_, err := s.arena.RecordContribution(ctx, &arenaService.RecordContributionInput{
		RoomID:      s.roomID,
		Participant: s.participant,
		Kind:        arenaService.ContributionEdit,
		Count:       count,
	})
	if err != nil {
		s.mu.Lock()
		s.pendingEdits += count
		s.mu.Unlock()
		return err
	}
	return nil
}

// HandleLocalChange is called by the widget on every change event
func (s *Session) HandleLocalChange(newText string) reconcile.Result {
	result := s.controller.HandleLocalChange(s.participant.ID, newText)
	if result.Outcome == reconcile.OutcomeAccepted {
		s.mu.Lock()
		s.pendingEdits++
		s.active = true
		s.mu.Unlock()
	}
	return result
}

// SendChat broadcasts a chat message and counts it as a contribution
func (s *Session) SendChat(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	s.send(kindChat, []byte(text))

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	_, err := s.arena.RecordContribution(ctx, &arenaService.RecordContributionInput{
		RoomID:      s.roomID,
		Participant: s.participant,
		Kind:        arenaService.ContributionChat,
	})
	return err
}

// Submit records outstanding edits, saves the buffer and grades it
func (s *Session) Submit(ctx context.Context) (*arenaService.SubmitSolutionOutput, error) {
	if err := s.flushEdits(ctx); err != nil {
		return nil, fmt.Errorf("failed to record edits: %w", err)
	}
	if err := s.flushActiveTime(ctx); err != nil {
		s.logger.Warn("Failed to record active time", zap.Error(err))
	}
	if err := s.saver.Flush(ctx); err != nil {
		s.logger.Warn("Failed to save before submit", zap.Error(err))
	}

	return s.arena.SubmitSolution(ctx, &arenaService.SubmitSolutionInput{
		RoomID:        s.roomID,
		ParticipantID: s.participant.ID,
		Code:          s.controller.LastKnownText(),
	})
}

// Text is the buffer as the widget shows it
func (s *Session) Text() string {
	return s.controller.LastKnownText()
}

// Status is the autosave indicator
func (s *Session) Status() autosave.Status {
	return s.saver.Status()
}

// Region returns the region this participant holds
func (s *Session) Region() (models.Region, bool) {
	return s.policy.RegionFor(s.participant.ID)
}

// Peers returns the last presence map seen, keyed by peer ID
func (s *Session) Peers() map[string]transport.PeerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]transport.PeerInfo, len(s.peers))
	for k, v := range s.peers {
		out[k] = v
	}
	return out
}

// Close saves outstanding work, leaves the mesh and releases the
// participant's region
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	<-s.cron.Stop().Done()

	var errs []error
	if err := s.flushEdits(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to record edits: %w", err))
	}
	if err := s.flushActiveTime(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to record active time: %w", err))
	}
	if err := s.saver.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to save buffer: %w", err))
	}
	s.saver.Close()
	s.controller.Close()

	if conn != nil {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to leave mesh: %w", err))
		}
	}

	if _, err := s.arena.LeaveRoom(ctx, &arenaService.LeaveRoomInput{
		RoomID:        s.roomID,
		ParticipantID: s.participant.ID,
	}); err != nil {
		errs = append(errs, fmt.Errorf("failed to leave room: %w", err))
	}

	s.logger.Info("Session closed")
	return errors.Join(errs...)
}
