package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/codearena/internal/autosave"
	"github.com/KirkDiggler/codearena/internal/challenges"
	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/reconcile"
	"github.com/KirkDiggler/codearena/internal/regions"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	snapshotMocks "github.com/KirkDiggler/codearena/internal/repositories/snapshot/mocks"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	arenaMocks "github.com/KirkDiggler/codearena/internal/services/arena/mocks"
	"github.com/KirkDiggler/codearena/internal/transport"
)

type fakeWidget struct {
	mu   sync.Mutex
	text string
	sets int
}

func (w *fakeWidget) SetText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = text
	w.sets++
}

func (w *fakeWidget) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

type failingTransport struct{}

func (failingTransport) Connect(ctx context.Context, input *transport.ConnectInput) (transport.Conn, error) {
	return nil, errors.New("connection refused")
}

type SessionTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockArena     *arenaMocks.MockService
	mockSnapshots *snapshotMocks.MockRepository
	hub           *transport.MemoryHub
	clock         *clock.Manual
	ctx           context.Context

	starter string
	alice   models.Participant
	bob     models.Participant

	mu            sync.Mutex
	stored        string
	regions       []models.Region
	contributions []arenaService.RecordContributionInput
	activeMinutes []int
	sessions      []*Session
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockArena = arenaMocks.NewMockService(s.mockCtrl)
	s.mockSnapshots = snapshotMocks.NewMockRepository(s.mockCtrl)
	s.hub = transport.NewMemoryHub()
	s.clock = clock.NewManual(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
	s.sessions = nil
	s.contributions = nil
	s.activeMinutes = nil

	challenge, err := challenges.Get(models.ChallengeFixTheBug)
	s.Require().NoError(err)
	s.starter = challenge.StarterCode
	s.stored = challenge.StarterCode

	s.alice = models.Participant{ID: "alice", Name: "Alice"}
	s.bob = models.Participant{ID: "bob", Name: "Bob"}

	// alice holds calculateSum, bob holds findMax
	s.regions = regions.FromDefs(challenge.Regions)
	s.regions[0].AssignedTo = "alice"
	s.regions[1].AssignedTo = "bob"

	s.mockSnapshots.EXPECT().GetSnapshot(gomock.Any(), &snapshotRepo.GetSnapshotInput{RoomID: "room-1"}).
		DoAndReturn(func(ctx context.Context, input *snapshotRepo.GetSnapshotInput) (*models.Snapshot, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return &models.Snapshot{RoomID: "room-1", Text: s.stored}, nil
		}).AnyTimes()
	s.mockSnapshots.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *snapshotRepo.SaveSnapshotInput) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.stored = input.Snapshot.Text
			return nil
		}).AnyTimes()
	s.mockArena.EXPECT().GetRegions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *arenaService.GetRegionsInput) (*arenaService.GetRegionsOutput, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return &arenaService.GetRegionsOutput{Regions: regions.Clone(s.regions)}, nil
		}).AnyTimes()
	s.mockArena.EXPECT().RecordContribution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *arenaService.RecordContributionInput) (*arenaService.RecordContributionOutput, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.contributions = append(s.contributions, *input)
			return &arenaService.RecordContributionOutput{}, nil
		}).AnyTimes()
	s.mockArena.EXPECT().RecordActiveTime(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *arenaService.RecordActiveTimeInput) (*arenaService.RecordActiveTimeOutput, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.activeMinutes = append(s.activeMinutes, input.Minutes)
			return &arenaService.RecordActiveTimeOutput{}, nil
		}).AnyTimes()
	s.mockArena.EXPECT().LeaveRoom(gomock.Any(), gomock.Any()).Return(&arenaService.LeaveRoomOutput{}, nil).AnyTimes()
}

func (s *SessionTestSuite) TearDownTest() {
	for i := len(s.sessions) - 1; i >= 0; i-- {
		s.NoError(s.sessions[i].Close(s.ctx))
	}
	s.mockCtrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) newSession(p models.Participant, widget *fakeWidget, mutate func(*Config)) *Session {
	cfg := &Config{
		RoomID:       "room-1",
		Participant:  p,
		PeerID:       "peer-" + p.ID,
		Arena:        s.mockArena,
		Snapshots:    s.mockSnapshots,
		Transport:    s.hub,
		Widget:       widget,
		Clock:        s.clock,
		PollInterval: time.Hour,
	}
	if mutate != nil {
		mutate(cfg)
	}

	session, err := New(cfg)
	s.Require().NoError(err)
	s.Require().NoError(session.Start(s.ctx))
	s.sessions = append(s.sessions, session)
	return session
}

// settle lets every echo window close
func (s *SessionTestSuite) settle() {
	s.clock.Advance(reconcile.DefaultEchoWindow)
}

func (s *SessionTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Participant: s.alice})
	s.ErrorIs(err, ErrMissingRoom)

	_, err = New(&Config{RoomID: "room-1"})
	s.ErrorIs(err, ErrMissingUser)

	_, err = New(&Config{RoomID: "room-1", Participant: s.alice})
	s.ErrorIs(err, ErrMissingDeps)
}

func (s *SessionTestSuite) TestStartLoadsSnapshotAndRegion() {
	widget := &fakeWidget{}
	alice := s.newSession(s.alice, widget, nil)

	s.Equal(s.starter, widget.Text())
	s.Equal(s.starter, alice.Text())

	region, ok := alice.Region()
	s.True(ok)
	s.Equal("sum", region.ID)
}

func (s *SessionTestSuite) TestStartTwice() {
	alice := s.newSession(s.alice, &fakeWidget{}, nil)
	s.ErrorIs(alice.Start(s.ctx), ErrAlreadyStarted)
}

func (s *SessionTestSuite) TestLateJoinerSyncsFromPeer() {
	aliceWidget := &fakeWidget{}
	s.newSession(s.alice, aliceWidget, nil)
	s.settle()

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	alice := s.sessions[0]
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(edited).Outcome)

	// The stored snapshot is stale until autosave fires; the peer's state wins
	bobWidget := &fakeWidget{}
	bob := s.newSession(s.bob, bobWidget, nil)

	s.Equal(edited, bobWidget.Text())
	s.Equal(edited, bob.Text())
	s.Len(bob.Peers(), 2)
	s.Len(alice.Peers(), 2)
}

func (s *SessionTestSuite) TestAcceptedEditReachesPeer() {
	aliceWidget := &fakeWidget{}
	bobWidget := &fakeWidget{}
	alice := s.newSession(s.alice, aliceWidget, nil)
	bob := s.newSession(s.bob, bobWidget, nil)
	s.settle()

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	result := alice.HandleLocalChange(edited)

	s.Equal(reconcile.OutcomeAccepted, result.Outcome)
	s.Equal(edited, bobWidget.Text())
	s.Equal(edited, bob.Text())
	s.Equal(autosave.StatusUnsaved, alice.Status())

	s.clock.Advance(autosave.DefaultQuietPeriod)
	s.Equal(autosave.StatusSaved, alice.Status())
	s.mu.Lock()
	s.Equal(edited, s.stored)
	s.mu.Unlock()
}

func (s *SessionTestSuite) TestRejectedEditRollsBack() {
	var rejections []reconcile.Rejection
	aliceWidget := &fakeWidget{}
	bobWidget := &fakeWidget{}
	s.newSession(s.alice, aliceWidget, nil)
	bob := s.newSession(s.bob, bobWidget, func(cfg *Config) {
		cfg.OnReject = func(r reconcile.Rejection) {
			rejections = append(rejections, r)
		}
	})
	s.settle()

	// bob reaches into alice's calculateSum
	intrusion := strings.Replace(s.starter, "let total = 0;", "let total = 1;", 1)
	result := bob.HandleLocalChange(intrusion)

	s.Equal(reconcile.OutcomeRejected, result.Outcome)
	s.Equal(s.starter, bobWidget.Text())
	s.Equal(s.starter, aliceWidget.Text())
	s.Require().Len(rejections, 1)
	s.Equal("bob", rejections[0].EditorID)
}

func (s *SessionTestSuite) TestSoloWhenTransportFails() {
	widget := &fakeWidget{}
	alice := s.newSession(s.alice, widget, func(cfg *Config) {
		cfg.Transport = failingTransport{}
	})
	s.settle()

	s.Empty(alice.Peers())

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(edited).Outcome)
	s.Equal(edited, alice.Text())
}

func (s *SessionTestSuite) TestPollAppliesNewerSnapshot() {
	widget := &fakeWidget{}
	alice := s.newSession(s.alice, widget, nil)
	s.settle()

	s.mu.Lock()
	s.stored = s.starter + "\n// reviewed\n"
	s.mu.Unlock()

	alice.poll()
	s.Equal(s.starter+"\n// reviewed\n", widget.Text())
}

func (s *SessionTestSuite) TestPollKeepsUnsavedEdit() {
	widget := &fakeWidget{}
	alice := s.newSession(s.alice, widget, nil)
	s.settle()

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(edited).Outcome)

	alice.poll()
	s.Equal(edited, alice.Text())

	s.mu.Lock()
	s.Require().Len(s.contributions, 1)
	s.Equal(arenaService.ContributionEdit, s.contributions[0].Kind)
	s.Equal(1, s.contributions[0].Count)
	s.mu.Unlock()
}

func (s *SessionTestSuite) TestAutosaveKeepsPeerEdits() {
	aliceWidget := &fakeWidget{}
	bobWidget := &fakeWidget{}
	alice := s.newSession(s.alice, aliceWidget, nil)
	bob := s.newSession(s.bob, bobWidget, nil)
	s.settle()

	sumFixed := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(sumFixed).Outcome)
	s.clock.Advance(time.Second)

	maxFixed := strings.Replace(bob.Text(), "let max = 0;", "let max = -Infinity;", 1)
	s.Equal(reconcile.OutcomeAccepted, bob.HandleLocalChange(maxFixed).Outcome)
	s.Equal(maxFixed, aliceWidget.Text())

	// alice's quiet period ends first and must store bob's merged edit
	s.clock.Advance(time.Second)
	s.mu.Lock()
	s.Equal(maxFixed, s.stored)
	s.mu.Unlock()

	alice.poll()
	s.Equal(maxFixed, aliceWidget.Text())

	sumRewritten := strings.Replace(alice.Text(), "total += numbers[i];", "total = total + numbers[i];", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(sumRewritten).Outcome)

	s.Contains(bobWidget.Text(), "let max = -Infinity;")
	s.Contains(bobWidget.Text(), "total = total + numbers[i];")
	s.Equal(alice.Text(), bob.Text())
}

func (s *SessionTestSuite) TestPollDefersToPeersWhileConnected() {
	aliceWidget := &fakeWidget{}
	alice := s.newSession(s.alice, aliceWidget, nil)
	s.newSession(s.bob, &fakeWidget{}, nil)
	s.settle()

	s.mu.Lock()
	s.stored = s.starter + "\n// written by a stale client\n"
	s.mu.Unlock()

	alice.poll()
	s.Equal(s.starter, aliceWidget.Text())
	s.Equal(s.starter, alice.Text())
}

func (s *SessionTestSuite) TestPollRecordsActiveMinutes() {
	alice := s.newSession(s.alice, &fakeWidget{}, nil)
	s.settle()

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(edited).Outcome)
	s.clock.Advance(90 * time.Second)
	alice.poll()

	// idle time is not credited
	s.clock.Advance(10 * time.Minute)
	alice.poll()

	s.Require().NoError(alice.SendChat(s.ctx, "done"))
	s.clock.Advance(40 * time.Second)
	alice.poll()

	s.mu.Lock()
	s.Equal([]int{1, 1}, s.activeMinutes)
	s.mu.Unlock()
}

func (s *SessionTestSuite) TestClaimsRegionWhenNoneHeld() {
	s.mu.Lock()
	s.regions[0].AssignedTo = ""
	s.mu.Unlock()

	s.mockArena.EXPECT().ClaimRegion(gomock.Any(), &arenaService.ClaimRegionInput{RoomID: "room-1", Participant: s.alice}).
		DoAndReturn(func(ctx context.Context, input *arenaService.ClaimRegionInput) (*arenaService.ClaimRegionOutput, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.regions[0].AssignedTo = "alice"
			return &arenaService.ClaimRegionOutput{RegionID: "sum", Assigned: true, Regions: regions.Clone(s.regions)}, nil
		})

	alice := s.newSession(s.alice, &fakeWidget{}, nil)

	region, ok := alice.Region()
	s.True(ok)
	s.Equal("sum", region.ID)
}

func (s *SessionTestSuite) TestSubmitRecordsEditsFirst() {
	widget := &fakeWidget{}
	alice := s.newSession(s.alice, widget, nil)
	s.settle()

	edited := strings.Replace(s.starter, "i <= numbers.length", "i < numbers.length", 1)
	s.Equal(reconcile.OutcomeAccepted, alice.HandleLocalChange(edited).Outcome)

	s.mockArena.EXPECT().SubmitSolution(s.ctx, &arenaService.SubmitSolutionInput{
		RoomID:        "room-1",
		ParticipantID: "alice",
		Code:          edited,
	}).DoAndReturn(func(ctx context.Context, input *arenaService.SubmitSolutionInput) (*arenaService.SubmitSolutionOutput, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Len(s.contributions, 1)
		s.Equal(edited, s.stored)
		return &arenaService.SubmitSolutionOutput{Correct: false}, nil
	})

	out, err := alice.Submit(s.ctx)
	s.Require().NoError(err)
	s.False(out.Correct)
	s.Equal(autosave.StatusSaved, alice.Status())
}

func (s *SessionTestSuite) TestChatReachesPeer() {
	var received []string
	s.newSession(s.alice, &fakeWidget{}, nil)
	s.newSession(s.bob, &fakeWidget{}, func(cfg *Config) {
		cfg.OnChat = func(from, text string) {
			received = append(received, from+": "+text)
		}
	})

	s.Require().NoError(s.sessions[0].SendChat(s.ctx, "found it"))

	s.Equal([]string{"peer-alice: found it"}, received)
	s.mu.Lock()
	s.Require().Len(s.contributions, 1)
	s.Equal(arenaService.ContributionChat, s.contributions[0].Kind)
	s.mu.Unlock()
}

func (s *SessionTestSuite) TestCloseLeavesMesh() {
	alice := s.newSession(s.alice, &fakeWidget{}, nil)
	bob := s.newSession(s.bob, &fakeWidget{}, nil)
	s.Len(bob.Peers(), 2)

	s.Require().NoError(alice.Close(s.ctx))
	s.Len(bob.Peers(), 1)
	s.ErrorIs(alice.Start(s.ctx), ErrSessionClosed)
}
