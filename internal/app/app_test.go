package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/codearena/internal/config"
	"github.com/KirkDiggler/codearena/internal/models"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	"github.com/KirkDiggler/codearena/internal/transport"
)

type AppTestSuite struct {
	suite.Suite
	mr  *miniredis.Miniredis
	cfg *config.Config
	ctx context.Context
}

func (s *AppTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.cfg = &config.Config{
		RedisAddr:      s.mr.Addr(),
		MeshTransport:  config.TransportRedis,
		LocalStorePath: s.T().TempDir(),
		PresenceTTL:    15 * time.Second,
	}
	s.ctx = context.Background()
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) TestNewWiresServices() {
	a, err := New(s.ctx, s.cfg, nil)
	s.Require().NoError(err)
	defer func() {
		s.NoError(a.Close())
	}()

	created, err := a.ArenaService.CreateRoom(s.ctx, &arenaService.CreateRoomInput{
		Name:    "Arena",
		Creator: models.Participant{ID: "alice", Name: "Alice"},
	})
	s.Require().NoError(err)

	joined, err := a.ArenaService.JoinRoom(s.ctx, &arenaService.JoinRoomInput{
		RoomID:      created.Room.ID,
		Participant: models.Participant{ID: "bob", Name: "Bob"},
	})
	s.Require().NoError(err)
	s.Len(joined.Participants, 2)
}

func (s *AppTestSuite) TestNewFailsWithoutRedis() {
	s.cfg.RedisAddr = "127.0.0.1:1"
	_, err := New(s.ctx, s.cfg, nil)
	s.Error(err)
}

func (s *AppTestSuite) TestTransportSelection() {
	a, err := New(s.ctx, s.cfg, nil)
	s.Require().NoError(err)
	defer func() {
		s.NoError(a.Close())
	}()

	tr, err := a.Transport()
	s.Require().NoError(err)
	s.NotNil(tr)

	a.Config.MeshTransport = config.TransportMemory
	tr, err = a.Transport()
	s.Require().NoError(err)
	s.IsType(&transport.MemoryHub{}, tr)
}

func (s *AppTestSuite) TestNewLogger() {
	_, err := NewLogger("debug")
	s.NoError(err)

	_, err = NewLogger("loud")
	s.Error(err)
}
