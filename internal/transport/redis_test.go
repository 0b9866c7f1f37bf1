package transport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisTransportTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	transport *redisTransport
	ctx       context.Context
}

func (s *RedisTransportTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	transport, err := NewRedis(&RedisConfig{
		RedisClient: s.client,
		PresenceTTL: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.transport = transport
	s.ctx = context.Background()
}

func (s *RedisTransportTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisTransportTestSuite(t *testing.T) {
	suite.Run(t, new(RedisTransportTestSuite))
}

func (s *RedisTransportTestSuite) connect(peerID string) (Conn, *recorder) {
	conn, err := s.transport.Connect(s.ctx, &ConnectInput{
		Channel: "codearena.room-1",
		Peer:    PeerInfo{ID: peerID, Name: peerID, UserID: "user-" + peerID},
	})
	s.Require().NoError(err)

	rec := &recorder{}
	conn.OnMessage(rec.onMessage)
	conn.OnPeersChanged(rec.onPeers)
	return conn, rec
}

func (s *RedisTransportTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewRedis(&RedisConfig{})
	s.ErrorIs(err, ErrNilClient)
}

func (s *RedisTransportTestSuite) TestBroadcastReachesOtherPeers() {
	a, recA := s.connect("a")
	defer a.Close()
	b, recB := s.connect("b")
	defer b.Close()

	s.Require().NoError(a.Broadcast(s.ctx, []byte("update")))

	s.Eventually(func() bool {
		return len(recB.received()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	s.Equal("a:update", recB.received()[0])

	// Sender never hears its own broadcast
	s.Never(func() bool {
		return len(recA.received()) > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func (s *RedisTransportTestSuite) TestPresenceJoinAndLeave() {
	a, recA := s.connect("a")
	defer a.Close()
	b, _ := s.connect("b")

	s.Eventually(func() bool {
		_, ok := a.Peers()["b"]
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	s.True(s.mr.Exists("presence:codearena.room-1:b"))

	s.Require().NoError(b.Close())
	s.False(s.mr.Exists("presence:codearena.room-1:b"))

	s.Eventually(func() bool {
		_, ok := recA.lastRoster()["b"]
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *RedisTransportTestSuite) TestCrashedPeerExpires() {
	a, _ := s.connect("a")
	defer a.Close()

	// Write a presence key for a peer that never heartbeats
	s.Require().NoError(s.client.Set(s.ctx, "presence:codearena.room-1:ghost",
		`{"id":"ghost","name":"Ghost","user_id":"user-ghost"}`, 3*time.Second).Err())

	conn := a.(*redisConn)
	conn.refresh(s.ctx)
	s.Contains(a.Peers(), "ghost")

	s.mr.FastForward(4 * time.Second)
	conn.refresh(s.ctx)
	s.NotContains(a.Peers(), "ghost")
}

func (s *RedisTransportTestSuite) TestBroadcastAfterClose() {
	a, _ := s.connect("a")
	s.Require().NoError(a.Close())
	s.ErrorIs(a.Broadcast(s.ctx, []byte("x")), ErrClosed)
}
