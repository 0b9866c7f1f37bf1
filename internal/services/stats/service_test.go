package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/codearena/internal/common/clock/mocks"
	"github.com/KirkDiggler/codearena/internal/models"
	statsRepo "github.com/KirkDiggler/codearena/internal/repositories/stats"
	statsMocks "github.com/KirkDiggler/codearena/internal/repositories/stats/mocks"
	"github.com/KirkDiggler/codearena/internal/store/local"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockStatsRepo *statsMocks.MockRepository
	mockClock     *clockMocks.MockClock
	store         *local.Store
	service       Service
	ctx           context.Context
	testTime      time.Time
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStatsRepo = statsMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	store, err := local.Open(local.Config{InMemory: true})
	s.Require().NoError(err)
	s.store = store

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := NewService(&Config{
		StatsRepo: s.mockStatsRepo,
		Local:     s.store,
		Clock:     s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *StatsServiceTestSuite) TearDownTest() {
	s.store.Close()
	s.mockCtrl.Finish()
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func (s *StatsServiceTestSuite) TestNewServiceValidation() {
	_, err := NewService(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewService(&Config{})
	s.ErrorIs(err, ErrNilStatsRepo)
}

func (s *StatsServiceTestSuite) TestRecordAnswerForNewUser() {
	s.mockStatsRepo.EXPECT().
		GetUserStats(s.ctx, &statsRepo.GetUserStatsInput{UserID: "alice"}).
		Return(nil, statsRepo.ErrStatsNotFound)

	var saved *models.UserStats
	s.mockStatsRepo.EXPECT().
		SaveUserStats(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *statsRepo.SaveUserStatsInput) error {
			saved = input.Stats
			return nil
		})

	out, err := s.service.RecordAnswer(s.ctx, &RecordAnswerInput{
		UserID:        "alice",
		UserName:      "Alice",
		IsCorrect:     true,
		CurrentStreak: 1,
		XP:            100,
	})
	s.Require().NoError(err)
	s.False(out.SavedLocally)

	s.Equal(saved, out.Stats)
	s.Equal("Alice", saved.UserName)
	s.Equal(100, saved.XP)
	s.Equal(1, saved.TotalQuestions)
	s.Equal(100, saved.Accuracy)
	s.Equal(1, saved.Streak)
	s.Equal(1, saved.DailyStreak)
	s.Equal("2025-04-19", saved.LastActiveDate)
	s.True(saved.LastUpdated.Equal(s.testTime))
}

func (s *StatsServiceTestSuite) TestIncorrectAnswerAwardsNoXP() {
	existing := &models.UserStats{UserID: "alice", XP: 50, TotalQuestions: 1, CorrectAnswers: 1, LastActiveDate: "2025-04-18", DailyStreak: 3, BestDailyStreak: 3}
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(existing, nil)
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.RecordAnswer(s.ctx, &RecordAnswerInput{UserID: "alice", IsCorrect: false, XP: 100})
	s.Require().NoError(err)

	s.Equal(50, out.Stats.XP)
	s.Equal(2, out.Stats.TotalQuestions)
	s.Equal(50, out.Stats.Accuracy)
	s.Equal(4, out.Stats.DailyStreak)
}

func (s *StatsServiceTestSuite) TestReadFailureUsesDefaults() {
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(nil, errors.New("connection refused"))
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.RecordChat(s.ctx, &RecordChatInput{UserID: "bob", UserName: "Bob"})
	s.Require().NoError(err)
	s.Equal(1, out.Stats.ChatMessages)
	s.Equal("bob", out.Stats.UserID)
}

func (s *StatsServiceTestSuite) TestWriteFailureFallsBackLocally() {
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(nil, statsRepo.ErrStatsNotFound)
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(errors.New("connection refused"))

	out, err := s.service.RecordEdits(s.ctx, &RecordEditsInput{UserID: "bob", UserName: "Bob", Count: 3})
	s.Require().NoError(err)
	s.True(out.SavedLocally)

	var kept models.UserStats
	s.Require().NoError(s.store.Get("user_stats:bob", &kept))
	s.Equal(3, kept.CodeEdits)

	// The next read merges on top of the local copy while the repository is
	// still unreachable
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(nil, errors.New("connection refused"))
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(nil)

	out, err = s.service.RecordEdits(s.ctx, &RecordEditsInput{UserID: "bob", Count: 2})
	s.Require().NoError(err)
	s.False(out.SavedLocally)
	s.Equal(5, out.Stats.CodeEdits)

	// A successful write clears the local copy
	s.ErrorIs(s.store.Get("user_stats:bob", &kept), local.ErrNotFound)
}

func (s *StatsServiceTestSuite) TestRecordActiveTime() {
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(&models.UserStats{UserID: "carol", ActiveTime: 10}, nil)
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(nil)

	out, err := s.service.RecordActiveTime(s.ctx, &RecordActiveTimeInput{UserID: "carol", Minutes: 20})
	s.Require().NoError(err)
	s.Equal(30, out.Stats.ActiveTime)
	s.Greater(out.Stats.CollaborationScore, 0)
}

func (s *StatsServiceTestSuite) TestInvalidUser() {
	_, err := s.service.RecordAnswer(s.ctx, &RecordAnswerInput{})
	s.ErrorIs(err, ErrInvalidUserID)

	_, err = s.service.GetUserStats(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidUserID)
}

func (s *StatsServiceTestSuite) TestUpdateRoomStats() {
	participants := []models.Participant{{ID: "bob", Name: "Bob"}, {ID: "alice", Name: "Alice"}}

	s.mockStatsRepo.EXPECT().
		GetRoomStats(s.ctx, &statsRepo.GetRoomStatsInput{RoomID: "room-1"}).
		Return(&models.RoomStats{RoomID: "room-1", RoomName: "Arena", TotalEdits: 5}, nil)

	var saved *models.RoomStats
	s.mockStatsRepo.EXPECT().SaveRoomStats(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *statsRepo.SaveRoomStatsInput) error {
			saved = input.Stats
			return nil
		})

	out, err := s.service.UpdateRoomStats(s.ctx, &UpdateRoomStatsInput{
		RoomID:       "room-1",
		Participants: participants,
		Edits:        5,
		Messages:     2,
	})
	s.Require().NoError(err)

	s.Equal(saved, out.Stats)
	s.Equal(10, saved.TotalEdits)
	s.Equal(2, saved.TotalMessages)
	s.Equal("Arena", saved.RoomName)
	s.Equal("alice_bob", saved.TeamKey)
	s.True(saved.CreatedAt.Equal(s.testTime))
	s.Greater(saved.TeamScore, 0)
}

func (s *StatsServiceTestSuite) TestUpdateRoomStatsWriteFailure() {
	s.mockStatsRepo.EXPECT().GetRoomStats(s.ctx, gomock.Any()).Return(nil, statsRepo.ErrStatsNotFound)
	s.mockStatsRepo.EXPECT().SaveRoomStats(s.ctx, gomock.Any()).Return(errors.New("down"))

	out, err := s.service.UpdateRoomStats(s.ctx, &UpdateRoomStatsInput{RoomID: "room-1", Messages: 1})
	s.Require().NoError(err)
	s.True(out.SavedLocally)
	s.Equal(1, out.Stats.TotalMessages)
}

func (s *StatsServiceTestSuite) TestWriteFailureWithoutLocalStore() {
	svc, err := NewService(&Config{StatsRepo: s.mockStatsRepo, Clock: s.mockClock})
	s.Require().NoError(err)

	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(nil, statsRepo.ErrStatsNotFound)
	s.mockStatsRepo.EXPECT().SaveUserStats(s.ctx, gomock.Any()).Return(errors.New("down"))

	_, err = svc.RecordChat(s.ctx, &RecordChatInput{UserID: "alice"})
	s.Error(err)
}

func (s *StatsServiceTestSuite) TestGetUserStatsDefaults() {
	s.mockStatsRepo.EXPECT().GetUserStats(s.ctx, gomock.Any()).Return(nil, statsRepo.ErrStatsNotFound)

	out, err := s.service.GetUserStats(s.ctx, &GetUserStatsInput{UserID: "dave", UserName: "Dave"})
	s.Require().NoError(err)
	s.Equal(&models.UserStats{UserID: "dave", UserName: "Dave"}, out.Stats)
}

func (s *StatsServiceTestSuite) TestLeaderboards() {
	s.mockStatsRepo.EXPECT().GetLeaderboard(s.ctx, &statsRepo.GetLeaderboardInput{Limit: 5}).
		Return([]models.LeaderboardEntry{{Rank: 1, UserID: "alice", Score: 50}}, nil)
	s.mockStatsRepo.EXPECT().GetTeamLeaderboard(s.ctx, &statsRepo.GetTeamLeaderboardInput{}).
		Return(nil, errors.New("down"))

	board, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{Limit: 5})
	s.Require().NoError(err)
	s.Len(board.Entries, 1)

	_, err = s.service.GetTeamLeaderboard(s.ctx, nil)
	s.Error(err)
}
