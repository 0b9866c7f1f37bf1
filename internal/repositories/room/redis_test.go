package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/regions"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
	defs    []models.RegionDef
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.defs = []models.RegionDef{
		{ID: "a", Name: "alpha", StartMarker: "function alpha", EndMarker: '}'},
		{ID: "b", Name: "beta", StartMarker: "function beta", EndMarker: '}'},
	}
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRoom() {
	room := &models.Room{
		ID:        "room-1",
		Name:      "Arena",
		CreatorID: "alice",
		Challenge: models.ChallengeFixTheBug,
		Locked:    true,
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}

	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	got, err := s.repo.GetRoom(s.ctx, &GetRoomInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal("Arena", got.Name)
	s.Equal(models.ChallengeFixTheBug, got.Challenge)
	s.True(got.Locked)
	s.True(got.IsOwner("alice"))
	s.False(got.IsOwner("bob"))
}

func (s *RedisRepositoryTestSuite) TestGetMissingRoom() {
	_, err := s.repo.GetRoom(s.ctx, &GetRoomInput{RoomID: "missing"})
	s.ErrorIs(err, ErrRoomNotFound)

	_, err = s.repo.GetRoom(s.ctx, &GetRoomInput{})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *RedisRepositoryTestSuite) TestParticipants() {
	s.Require().NoError(s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		RoomID: "room-1", Participant: models.Participant{ID: "bob", Name: "Bob"},
	}))
	s.Require().NoError(s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		RoomID: "room-1", Participant: models.Participant{ID: "alice", Name: "Alice"},
	}))
	// Re-adding updates the name without duplicating
	s.Require().NoError(s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		RoomID: "room-1", Participant: models.Participant{ID: "bob", Name: "Robert"},
	}))

	participants, err := s.repo.GetParticipants(s.ctx, &GetParticipantsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal([]models.Participant{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Robert"},
	}, participants)

	s.Require().NoError(s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{RoomID: "room-1", ParticipantID: "bob"}))

	participants, err = s.repo.GetParticipants(s.ctx, &GetParticipantsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Len(participants, 1)
}

func (s *RedisRepositoryTestSuite) TestRegionsDefaultEmpty() {
	got, err := s.repo.GetRegions(s.ctx, &GetRegionsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRegions() {
	regs := regions.FromDefs(s.defs)
	regs[0].AssignedTo = "alice"
	regs[0].AssignedName = "Alice"

	s.Require().NoError(s.repo.SaveRegions(s.ctx, &SaveRegionsInput{RoomID: "room-1", Regions: regs}))

	got, err := s.repo.GetRegions(s.ctx, &GetRegionsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal(regs, got)
	s.Equal('}', got[0].EndMarker)
}

func (s *RedisRepositoryTestSuite) TestUpdateRegionsNoOpDoesNotWrite() {
	s.Require().NoError(s.repo.SaveRegions(s.ctx, &SaveRegionsInput{RoomID: "room-1", Regions: regions.FromDefs(s.defs)}))

	out, err := s.repo.UpdateRegions(s.ctx, &UpdateRegionsInput{
		RoomID: "room-1",
		Update: func(regs []models.Region) bool { return false },
	})
	s.Require().NoError(err)
	s.False(out.Changed)
	s.Len(out.Regions, 2)
}

func (s *RedisRepositoryTestSuite) TestConcurrentClaimsNeverShareRegion() {
	s.Require().NoError(s.repo.SaveRegions(s.ctx, &SaveRegionsInput{RoomID: "room-1", Regions: regions.FromDefs(s.defs)}))

	claimants := []models.Participant{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
	}

	var wg sync.WaitGroup
	for _, p := range claimants {
		wg.Add(1)
		go func(p models.Participant) {
			defer wg.Done()
			_, err := s.repo.UpdateRegions(s.ctx, &UpdateRegionsInput{
				RoomID: "room-1",
				Update: func(regs []models.Region) bool {
					_, assigned := regions.AssignNextRegion(regs, p, 2)
					return assigned
				},
			})
			s.NoError(err)
		}(p)
	}
	wg.Wait()

	got, err := s.repo.GetRegions(s.ctx, &GetRegionsInput{RoomID: "room-1"})
	s.Require().NoError(err)

	holders := map[string]bool{}
	for _, r := range got {
		s.NotEmpty(r.AssignedTo)
		s.False(holders[r.AssignedTo], "participant %s holds two regions", r.AssignedTo)
		holders[r.AssignedTo] = true
	}
	s.Len(holders, 2)
}

func (s *RedisRepositoryTestSuite) TestContributions() {
	s.Require().NoError(s.repo.SetContribution(s.ctx, &SetContributionInput{RoomID: "room-1", ParticipantID: "alice", Edited: true}))
	s.Require().NoError(s.repo.SetContribution(s.ctx, &SetContributionInput{RoomID: "room-1", ParticipantID: "alice", Chatted: true}))
	s.Require().NoError(s.repo.SetContribution(s.ctx, &SetContributionInput{RoomID: "room-1", ParticipantID: "bob", Chatted: true}))
	s.Require().NoError(s.repo.SetContribution(s.ctx, &SetContributionInput{RoomID: "room-1", ParticipantID: "carol"}))

	got, err := s.repo.GetContributions(s.ctx, &GetContributionsInput{RoomID: "room-1"})
	s.Require().NoError(err)

	s.Equal(models.Contribution{ParticipantID: "alice", HasEdited: true, HasChatted: true}, got["alice"])
	s.Equal(models.Contribution{ParticipantID: "bob", HasChatted: true}, got["bob"])
	s.NotContains(got, "carol")
}
