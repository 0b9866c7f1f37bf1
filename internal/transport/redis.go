package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Key prefixes for Redis
	meshChannelPrefix   = "mesh:"
	presenceKeyPrefix   = "presence:"
	defaultPresenceTTL  = 15 * time.Second
	envelopeKindMessage = "msg"
	envelopeKindJoin    = "join"
	envelopeKindLeave   = "leave"
)

// RedisConfig holds configuration for the Redis pub/sub transport
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// PresenceTTL is how long a peer stays present without a heartbeat. A
	// crashed peer disappears once its key expires.
	PresenceTTL time.Duration

	// HeartbeatInterval defaults to a third of PresenceTTL
	HeartbeatInterval time.Duration

	Logger *zap.Logger
}

// redisTransport implements Transport over Redis pub/sub
type redisTransport struct {
	client    *redis.Client
	ttl       time.Duration
	heartbeat time.Duration
	logger    *zap.Logger
}

// envelope is the pub/sub wire format
type envelope struct {
	From    string `json:"from"`
	Kind    string `json:"kind"`
	Payload []byte `json:"payload,omitempty"`
}

// NewRedis creates a Redis-backed transport
func NewRedis(cfg *RedisConfig) (*redisTransport, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RedisClient == nil {
		return nil, ErrNilClient
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.PresenceTTL
	if ttl <= 0 {
		ttl = defaultPresenceTTL
	}
	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = ttl / 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisTransport{
		client:    cfg.RedisClient,
		ttl:       ttl,
		heartbeat: heartbeat,
		logger:    logger,
	}, nil
}

type redisConn struct {
	transport *redisTransport
	channel   string
	peer      PeerInfo
	pubsub    *redis.PubSub
	logger    *zap.Logger

	mu       sync.Mutex
	handlers handlers
	peers    map[string]PeerInfo
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}
}

// Connect subscribes to the channel, writes the presence key and announces
// the join
func (t *redisTransport) Connect(ctx context.Context, input *ConnectInput) (Conn, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pubsub := t.client.Subscribe(ctx, meshChannelPrefix+input.Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", input.Channel, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	conn := &redisConn{
		transport: t,
		channel:   input.Channel,
		peer:      input.Peer,
		pubsub:    pubsub,
		logger:    t.logger.With(zap.String("channel", input.Channel), zap.String("peer_id", input.Peer.ID)),
		peers:     map[string]PeerInfo{},
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	if err := conn.touch(ctx); err != nil {
		cancel()
		pubsub.Close()
		return nil, err
	}
	if err := conn.publish(ctx, envelope{From: input.Peer.ID, Kind: envelopeKindJoin}); err != nil {
		cancel()
		pubsub.Close()
		return nil, err
	}
	conn.refresh(ctx)

	go conn.run(loopCtx)
	return conn, nil
}

func (c *redisConn) presenceKey(peerID string) string {
	return fmt.Sprintf("%s%s:%s", presenceKeyPrefix, c.channel, peerID)
}

// touch writes or refreshes this peer's presence key
func (c *redisConn) touch(ctx context.Context) error {
	peerJSON, err := json.Marshal(c.peer)
	if err != nil {
		return fmt.Errorf("failed to marshal peer: %w", err)
	}
	if err := c.transport.client.Set(ctx, c.presenceKey(c.peer.ID), peerJSON, c.transport.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write presence: %w", err)
	}
	return nil
}

func (c *redisConn) publish(ctx context.Context, env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := c.transport.client.Publish(ctx, meshChannelPrefix+c.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	return nil
}

func (c *redisConn) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.transport.heartbeat)
	defer ticker.Stop()

	messages := c.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.touch(ctx); err != nil {
				c.logger.Warn("Failed to refresh presence", zap.Error(err))
			}
			c.refresh(ctx)
		case msg, ok := <-messages:
			if !ok {
				return
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *redisConn) handle(ctx context.Context, msg *redis.Message) {
	var env envelope
	if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
		c.logger.Warn("Dropping malformed envelope", zap.Error(err))
		return
	}

	switch env.Kind {
	case envelopeKindJoin, envelopeKindLeave:
		c.refresh(ctx)
	case envelopeKindMessage:
		if env.From == c.peer.ID {
			return
		}
		c.mu.Lock()
		handler := c.handlers.message
		c.mu.Unlock()
		if handler != nil {
			handler(env.From, env.Payload)
		}
	}
}

// refresh rebuilds the presence map from the live keys and fires the peers
// handler when it changed
func (c *redisConn) refresh(ctx context.Context) {
	var keys []string
	iter := c.transport.client.Scan(ctx, 0, c.presenceKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to scan presence", zap.Error(err))
		return
	}

	peers := make(map[string]PeerInfo, len(keys))
	if len(keys) > 0 {
		values, err := c.transport.client.MGet(ctx, keys...).Result()
		if err != nil {
			c.logger.Warn("Failed to read presence", zap.Error(err))
			return
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				// Expired between SCAN and MGET
				continue
			}
			var info PeerInfo
			if err := json.Unmarshal([]byte(raw), &info); err != nil {
				continue
			}
			peers[info.ID] = info
		}
	}

	c.mu.Lock()
	if c.closed || samePeers(c.peers, peers) {
		c.mu.Unlock()
		return
	}
	c.peers = peers
	handler := c.handlers.peers
	c.mu.Unlock()

	if handler != nil {
		handler(copyPeers(peers))
	}
}

func samePeers(a, b map[string]PeerInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func (c *redisConn) Broadcast(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return c.publish(ctx, envelope{From: c.peer.ID, Kind: envelopeKindMessage, Payload: payload})
}

func (c *redisConn) OnMessage(handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.message = handler
}

func (c *redisConn) OnPeersChanged(handler PeersHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers.peers = handler
}

func (c *redisConn) Peers() map[string]PeerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyPeers(c.peers)
}

// Close removes the presence key, announces the departure and stops the
// receive loop
func (c *redisConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.transport.client.Del(ctx, c.presenceKey(c.peer.ID)).Err(); err != nil {
		c.logger.Warn("Failed to delete presence", zap.Error(err))
	}
	if err := c.publish(ctx, envelope{From: c.peer.ID, Kind: envelopeKindLeave}); err != nil {
		c.logger.Warn("Failed to announce leave", zap.Error(err))
	}

	c.cancel()
	err := c.pubsub.Close()
	<-c.done
	return err
}
