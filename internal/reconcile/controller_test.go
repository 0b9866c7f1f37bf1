package reconcile

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/regions"
)

const starter = `// header

function alpha() {
  return 1;
}

function beta() {
  return 2;
}

function gamma() {
  return 3;
}

function delta() {
  return 4;
}`

// fakeWidget reports every SetText back as a change event, the way editor
// components do
type fakeWidget struct {
	mu       sync.Mutex
	ctrl     *Controller
	editorID string
	text     string
	sets     []string
	echoes   []Result
}

func (w *fakeWidget) SetText(text string) {
	w.mu.Lock()
	w.text = text
	w.sets = append(w.sets, text)
	ctrl := w.ctrl
	w.mu.Unlock()

	if ctrl != nil {
		res := ctrl.HandleLocalChange(w.editorID, text)
		w.mu.Lock()
		w.echoes = append(w.echoes, res)
		w.mu.Unlock()
	}
}

type fakeReplica struct {
	text     string
	replaces []string
	// onReplace simulates peer traffic arriving mid-write
	onReplace func()
}

func (r *fakeReplica) Text() string {
	return r.text
}

func (r *fakeReplica) Replace(text string) {
	r.text = text
	r.replaces = append(r.replaces, text)
	if r.onReplace != nil {
		hook := r.onReplace
		r.onReplace = nil
		hook()
	}
}

type fakeSaver struct {
	scheduled []string
	pending   bool
}

func (s *fakeSaver) Schedule(text string) {
	s.scheduled = append(s.scheduled, text)
}

func (s *fakeSaver) Pending() bool {
	return s.pending
}

type ControllerTestSuite struct {
	suite.Suite
	clock      *clock.Manual
	widget     *fakeWidget
	replica    *fakeReplica
	saver      *fakeSaver
	policy     *regions.Policy
	ctrl       *Controller
	rejections []Rejection
}

func (s *ControllerTestSuite) SetupTest() {
	s.clock = clock.NewManual(time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC))
	s.widget = &fakeWidget{editorID: "alice"}
	s.replica = &fakeReplica{}
	s.saver = &fakeSaver{}
	s.rejections = nil

	s.policy = regions.NewPolicy([]models.RegionDef{
		{ID: "a", Name: "alpha", StartMarker: "function alpha", EndMarker: '}'},
		{ID: "b", Name: "beta", StartMarker: "function beta", EndMarker: '}'},
		{ID: "c", Name: "gamma", StartMarker: "function gamma", EndMarker: '}'},
		{ID: "d", Name: "delta", StartMarker: "function delta", EndMarker: '}'},
	})
	for _, p := range []models.Participant{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
		{ID: "dave", Name: "Dave"},
	} {
		s.policy.Assign(p, 4)
	}

	ctrl, err := New(&Config{
		Widget:  s.widget,
		Replica: s.replica,
		Saver:   s.saver,
		Policy:  s.policy,
		Clock:   s.clock,
		OnReject: func(r Rejection) {
			s.rejections = append(s.rejections, r)
		},
	})
	s.Require().NoError(err)
	s.ctrl = ctrl
	s.widget.ctrl = ctrl
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func editLine(text string, line int, content string) string {
	lines := strings.Split(text, "\n")
	lines[line-1] = content
	return strings.Join(lines, "\n")
}

// load applies the starter snapshot and lets the echo window pass
func (s *ControllerTestSuite) load() {
	s.Require().True(s.ctrl.ApplySnapshot(starter))
	s.clock.Advance(DefaultEchoWindow)
	s.Require().False(s.ctrl.Applying())
}

func (s *ControllerTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Widget: s.widget})
	s.Error(err)
}

func (s *ControllerTestSuite) TestInitialSnapshotSeedsEmptyReplica() {
	s.True(s.ctrl.ApplySnapshot(starter))

	s.Equal(starter, s.widget.text)
	s.Equal([]string{starter}, s.replica.replaces)
	s.Empty(s.saver.scheduled, "snapshots are never written back")
	s.True(s.ctrl.Applying())

	s.Require().Len(s.widget.echoes, 1)
	s.Equal(OutcomeIgnored, s.widget.echoes[0].Outcome)

	s.clock.Advance(DefaultEchoWindow)
	s.False(s.ctrl.Applying())
}

func (s *ControllerTestSuite) TestSnapshotDoesNotReseedPopulatedReplica() {
	s.replica.text = "peer text"

	s.True(s.ctrl.ApplySnapshot(starter))
	s.Empty(s.replica.replaces)
}

func (s *ControllerTestSuite) TestRemoteApplyDoesNotEcho() {
	s.load()

	fromBob := editLine(starter, 8, "  return 22;")
	s.True(s.ctrl.ApplyReplicaUpdate(fromBob))

	s.Equal(fromBob, s.widget.text)
	s.Equal(fromBob, s.ctrl.LastKnownText())

	// Only the initial seed reached the replica and nothing was persisted
	s.Equal([]string{starter}, s.replica.replaces)
	s.Empty(s.saver.scheduled)
	for _, echo := range s.widget.echoes {
		s.Equal(OutcomeIgnored, echo.Outcome)
	}
}

func (s *ControllerTestSuite) TestRemoteEqualToLastKnownIsSkipped() {
	s.load()
	sets := len(s.widget.sets)

	s.False(s.ctrl.ApplyReplicaUpdate(starter))
	s.Len(s.widget.sets, sets)
}

func (s *ControllerTestSuite) TestAcceptedLocalChange() {
	s.load()

	edited := editLine(starter, 4, "  return 11;")
	res := s.ctrl.HandleLocalChange("alice", edited)

	s.Equal(OutcomeAccepted, res.Outcome)
	s.Equal([]int{4}, res.Decision.ChangedLines)
	s.Equal(edited, s.ctrl.LastKnownText())
	s.Equal(edited, s.replica.text)
	s.Equal([]string{edited}, s.saver.scheduled)
	s.False(s.ctrl.Applying())

	// Spans follow the accepted text
	span, ok := s.policy.Spans()["a"]
	s.True(ok)
	s.Equal(models.RegionSpan{Start: 3, End: 5}, span)
}

func (s *ControllerTestSuite) TestRejectedChangeRollsBack() {
	s.load()
	replaces := len(s.replica.replaces)

	intrusion := editLine(starter, 8, "  return 99;")
	res := s.ctrl.HandleLocalChange("alice", intrusion)

	s.Equal(OutcomeRejected, res.Outcome)
	s.Equal([]int{8}, res.Decision.Violations)
	s.Contains(res.Decision.Reason, "line 8")

	s.Equal(starter, s.widget.text)
	s.Equal(starter, s.ctrl.LastKnownText())
	s.Len(s.replica.replaces, replaces)
	s.Empty(s.saver.scheduled)

	s.Require().Len(s.rejections, 1)
	s.Equal("alice", s.rejections[0].EditorID)

	// The rollback write is echo suppressed
	s.True(s.ctrl.Applying())
	last := s.widget.echoes[len(s.widget.echoes)-1]
	s.Equal(OutcomeIgnored, last.Outcome)

	s.clock.Advance(DefaultEchoWindow)
	s.False(s.ctrl.Applying())
}

func (s *ControllerTestSuite) TestMixedChangeRejectedWhole() {
	s.load()

	mixed := editLine(editLine(starter, 4, "  return 11;"), 8, "  return 22;")
	res := s.ctrl.HandleLocalChange("alice", mixed)

	s.Equal(OutcomeRejected, res.Outcome)
	s.Equal(starter, s.widget.text)
	s.Empty(s.saver.scheduled)
}

func (s *ControllerTestSuite) TestLocalChangeIgnoredDuringRemoteApply() {
	s.Require().True(s.ctrl.ApplySnapshot(starter))

	res := s.ctrl.HandleLocalChange("alice", editLine(starter, 4, "  return 11;"))
	s.Equal(OutcomeIgnored, res.Outcome)
	s.Empty(s.saver.scheduled)
}

func (s *ControllerTestSuite) TestReplicaUpdateDeferredDuringEchoWindow() {
	s.load()

	first := editLine(starter, 8, "  return 22;")
	s.True(s.ctrl.ApplyReplicaUpdate(first))

	second := editLine(first, 12, "  return 33;")
	s.replica.text = second
	s.False(s.ctrl.ApplyReplicaUpdate(second))
	s.Equal(first, s.widget.text)

	s.clock.Advance(DefaultEchoWindow)

	s.Equal(second, s.widget.text)
	s.Equal(second, s.ctrl.LastKnownText())

	s.clock.Advance(DefaultEchoWindow)
	s.False(s.ctrl.Applying())
}

func (s *ControllerTestSuite) TestReplicaUpdateDeferredDuringLocalWrite() {
	s.load()

	local := editLine(starter, 4, "  return 11;")
	merged := editLine(local, 8, "  return 22;")
	s.replica.onReplace = func() {
		// A peer's edit merges into the replica while the local write runs
		s.replica.text = merged
		s.False(s.ctrl.ApplyReplicaUpdate(merged))
	}

	res := s.ctrl.HandleLocalChange("alice", local)
	s.Equal(OutcomeAccepted, res.Outcome)

	// The deferred update was re-read from the replica, not dropped
	s.Equal(merged, s.widget.text)
	s.Equal(merged, s.ctrl.LastKnownText())
	s.Equal([]string{local}, s.saver.scheduled)
}

func (s *ControllerTestSuite) TestSnapshotSkippedWithPendingSave() {
	s.load()
	s.saver.pending = true

	s.False(s.ctrl.ApplySnapshot("stale persisted text"))
	s.Equal(starter, s.widget.text)
}

func (s *ControllerTestSuite) TestSnapshotSkippedWhileWriterInFlight() {
	s.Require().True(s.ctrl.ApplySnapshot(starter))

	s.False(s.ctrl.ApplySnapshot("other"))
	s.clock.Advance(DefaultEchoWindow)

	// Snapshots are not deferred; the next poll picks them up
	s.Equal(starter, s.widget.text)
}

func (s *ControllerTestSuite) TestEchoWindowClearsFlag() {
	s.load()

	s.True(s.ctrl.ApplyReplicaUpdate(editLine(starter, 8, "  return 22;")))
	s.clock.Advance(DefaultEchoWindow / 2)
	s.True(s.ctrl.Applying())
	s.clock.Advance(DefaultEchoWindow / 2)
	s.False(s.ctrl.Applying())
	s.Equal(0, s.clock.Pending())
}

func (s *ControllerTestSuite) TestCloseMakesEverythingNoOp() {
	s.load()
	s.ctrl.Close()

	s.Equal(OutcomeIgnored, s.ctrl.HandleLocalChange("alice", editLine(starter, 4, "x")).Outcome)
	s.False(s.ctrl.ApplyReplicaUpdate("remote"))
	s.False(s.ctrl.ApplySnapshot("snapshot"))
	s.Empty(s.saver.scheduled)
	s.Equal(0, s.clock.Pending())
}
