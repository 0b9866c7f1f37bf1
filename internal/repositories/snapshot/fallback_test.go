package snapshot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	"github.com/KirkDiggler/codearena/internal/repositories/snapshot/mocks"
	"github.com/KirkDiggler/codearena/internal/store/local"
)

type FallbackTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockPrimary *mocks.MockRepository
	store       *local.Store
	repo        snapshot.Repository
	ctx         context.Context
	testNow     time.Time
}

func (s *FallbackTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPrimary = mocks.NewMockRepository(s.mockCtrl)

	store, err := local.Open(local.Config{InMemory: true})
	s.Require().NoError(err)
	s.store = store

	repo, err := snapshot.NewFallback(&snapshot.FallbackConfig{
		Primary: s.mockPrimary,
		Local:   s.store,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *FallbackTestSuite) TearDownTest() {
	s.store.Close()
	s.mockCtrl.Finish()
}

func TestFallbackTestSuite(t *testing.T) {
	suite.Run(t, new(FallbackTestSuite))
}

func (s *FallbackTestSuite) TestSaveFallsBackToLocal() {
	snap := &models.Snapshot{RoomID: "room-1", Text: "offline edit", UpdatedAt: s.testNow}
	input := &snapshot.SaveSnapshotInput{Snapshot: snap}

	s.mockPrimary.EXPECT().SaveSnapshot(s.ctx, input).Return(errors.New("connection refused"))

	err := s.repo.SaveSnapshot(s.ctx, input)
	s.ErrorIs(err, snapshot.ErrSavedLocally)

	// Reading while the primary is still down returns the local copy
	s.mockPrimary.EXPECT().GetSnapshot(s.ctx, gomock.Any()).Return(nil, errors.New("connection refused"))

	got, err := s.repo.GetSnapshot(s.ctx, &snapshot.GetSnapshotInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal("offline edit", got.Text)
}

func (s *FallbackTestSuite) TestSuccessfulSaveClearsLocalCopy() {
	s.Require().NoError(s.store.Put("snapshot:room-1", &models.Snapshot{RoomID: "room-1", Text: "stale"}))

	input := &snapshot.SaveSnapshotInput{Snapshot: &models.Snapshot{RoomID: "room-1", Text: "fresh"}}
	s.mockPrimary.EXPECT().SaveSnapshot(s.ctx, input).Return(nil)

	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, input))

	var left models.Snapshot
	s.ErrorIs(s.store.Get("snapshot:room-1", &left), local.ErrNotFound)
}

func (s *FallbackTestSuite) TestGetPrefersNewerCopy() {
	s.Require().NoError(s.store.Put("snapshot:room-1", &models.Snapshot{
		RoomID:    "room-1",
		Text:      "local newer",
		UpdatedAt: s.testNow.Add(time.Minute),
	}))

	s.mockPrimary.EXPECT().GetSnapshot(s.ctx, gomock.Any()).Return(&models.Snapshot{
		RoomID:    "room-1",
		Text:      "primary older",
		UpdatedAt: s.testNow,
	}, nil)

	got, err := s.repo.GetSnapshot(s.ctx, &snapshot.GetSnapshotInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal("local newer", got.Text)
}

func (s *FallbackTestSuite) TestGetMissingEverywhere() {
	s.mockPrimary.EXPECT().GetSnapshot(s.ctx, gomock.Any()).Return(nil, snapshot.ErrSnapshotNotFound)

	_, err := s.repo.GetSnapshot(s.ctx, &snapshot.GetSnapshotInput{RoomID: "room-1"})
	s.ErrorIs(err, snapshot.ErrSnapshotNotFound)
}

func (s *FallbackTestSuite) TestGetPrimaryErrorWithoutLocalCopy() {
	s.mockPrimary.EXPECT().GetSnapshot(s.ctx, gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := s.repo.GetSnapshot(s.ctx, &snapshot.GetSnapshotInput{RoomID: "room-1"})
	s.Error(err)
	s.NotErrorIs(err, snapshot.ErrSnapshotNotFound)
}
