package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/common/clock"
)

const (
	meshSubjectPrefix     = "arena.mesh."
	presenceSubjectPrefix = "arena.presence."
	presenceKindBeat      = "beat"
	presenceKindHello     = "hello"
	presenceKindLeave     = "leave"
)

// NATSConfig holds configuration for the NATS transport
type NATSConfig struct {
	// Conn is an established NATS connection owned by the caller
	Conn *nats.Conn

	// PresenceTTL is how long a silent peer is kept in the roster
	PresenceTTL time.Duration

	// HeartbeatInterval defaults to a third of PresenceTTL
	HeartbeatInterval time.Duration

	Clock  clock.Clock
	Logger *zap.Logger
}

type natsTransport struct {
	conn      *nats.Conn
	ttl       time.Duration
	heartbeat time.Duration
	clock     clock.Clock
	logger    *zap.Logger
}

// presenceMessage is published on the presence subject
type presenceMessage struct {
	Kind string   `json:"kind"`
	Peer PeerInfo `json:"peer"`
}

// NewNATS creates a NATS-backed transport
func NewNATS(cfg *NATSConfig) (*natsTransport, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Conn == nil {
		return nil, ErrNilClient
	}

	ttl := cfg.PresenceTTL
	if ttl <= 0 {
		ttl = defaultPresenceTTL
	}
	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = ttl / 3
	}
	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &natsTransport{
		conn:      cfg.Conn,
		ttl:       ttl,
		heartbeat: heartbeat,
		clock:     clk,
		logger:    logger,
	}, nil
}

// MeshSubject is the subject carrying broadcasts for a channel
func MeshSubject(channel string) string {
	return meshSubjectPrefix + channel
}

// PresenceSubject is the subject carrying heartbeats for a channel
func PresenceSubject(channel string) string {
	return presenceSubjectPrefix + channel
}

type natsConn struct {
	transport *natsTransport
	channel   string
	peer      PeerInfo
	presence  *presenceTable
	logger    *zap.Logger

	mu       sync.Mutex
	handlers handlers
	subs     []*nats.Subscription
	closed   bool

	stop chan struct{}
	done chan struct{}
}

// Connect subscribes to the mesh and presence subjects and starts
// heartbeating
func (t *natsTransport) Connect(ctx context.Context, input *ConnectInput) (Conn, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	conn := &natsConn{
		transport: t,
		channel:   input.Channel,
		peer:      input.Peer,
		presence:  newPresenceTable(t.ttl),
		logger:    t.logger.With(zap.String("channel", input.Channel), zap.String("peer_id", input.Peer.ID)),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	conn.presence.seen(input.Peer, t.clock.Now())

	meshSub, err := t.conn.Subscribe(MeshSubject(input.Channel), conn.handleMesh)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", MeshSubject(input.Channel), err)
	}
	presenceSub, err := t.conn.Subscribe(PresenceSubject(input.Channel), conn.handlePresence)
	if err != nil {
		meshSub.Unsubscribe()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", PresenceSubject(input.Channel), err)
	}
	conn.subs = []*nats.Subscription{meshSub, presenceSub}

	if err := t.conn.FlushWithContext(ctx); err != nil {
		conn.unsubscribe()
		return nil, fmt.Errorf("failed to flush subscriptions: %w", err)
	}
	if err := conn.announce(presenceKindHello); err != nil {
		conn.unsubscribe()
		return nil, err
	}

	go conn.run()
	return conn, nil
}

func (c *natsConn) announce(kind string) error {
	data, err := json.Marshal(presenceMessage{Kind: kind, Peer: c.peer})
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %w", err)
	}
	if err := c.transport.conn.Publish(PresenceSubject(c.channel), data); err != nil {
		return fmt.Errorf("failed to publish presence: %w", err)
	}
	return nil
}

func (c *natsConn) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.transport.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if err := c.announce(presenceKindBeat); err != nil {
				c.logger.Warn("Failed to heartbeat", zap.Error(err))
			}
			if c.presence.prune(c.transport.clock.Now(), c.peer.ID) {
				c.notifyPeers()
			}
		}
	}
}

func (c *natsConn) handleMesh(msg *nats.Msg) {
	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		c.logger.Warn("Dropping malformed envelope", zap.Error(err))
		return
	}
	if env.From == c.peer.ID {
		return
	}

	c.mu.Lock()
	handler := c.handlers.message
	closed := c.closed
	c.mu.Unlock()
	if handler != nil && !closed {
		handler(env.From, env.Payload)
	}
}

func (c *natsConn) handlePresence(msg *nats.Msg) {
	var pm presenceMessage
	if err := json.Unmarshal(msg.Data, &pm); err != nil {
		c.logger.Warn("Dropping malformed presence", zap.Error(err))
		return
	}
	if pm.Peer.ID == c.peer.ID {
		return
	}

	changed := false
	switch pm.Kind {
	case presenceKindLeave:
		changed = c.presence.remove(pm.Peer.ID)
	case presenceKindHello:
		changed = c.presence.seen(pm.Peer, c.transport.clock.Now())
		// Newcomers learn the roster from immediate replies
		if err := c.announce(presenceKindBeat); err != nil {
			c.logger.Warn("Failed to answer hello", zap.Error(err))
		}
	default:
		changed = c.presence.seen(pm.Peer, c.transport.clock.Now())
	}
	if changed {
		c.notifyPeers()
	}
}

func (c *natsConn) notifyPeers() {
	c.mu.Lock()
	handler := c.handlers.peers
	closed := c.closed
	c.mu.Unlock()
	if handler != nil && !closed {
		handler(c.presence.snapshot())
	}
}

func (c *natsConn) Broadcast(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	data, err := json.Marshal(envelope{From: c.peer.ID, Kind: envelopeKindMessage, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := c.transport.conn.Publish(MeshSubject(c.channel), data); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	return nil
}

func (c *natsConn) OnMessage(handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.message = handler
}

func (c *natsConn) OnPeersChanged(handler PeersHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.peers = handler
}

func (c *natsConn) Peers() map[string]PeerInfo {
	return c.presence.snapshot()
}

func (c *natsConn) unsubscribe() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warn("Failed to unsubscribe", zap.Error(err))
		}
	}
}

func (c *natsConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if err := c.announce(presenceKindLeave); err != nil {
		c.logger.Warn("Failed to announce leave", zap.Error(err))
	}
	close(c.stop)
	<-c.done
	c.unsubscribe()
	return nil
}
