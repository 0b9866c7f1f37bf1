package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ManualClockTestSuite struct {
	suite.Suite
	start time.Time
	clock *Manual
}

func (s *ManualClockTestSuite) SetupTest() {
	s.start = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.clock = NewManual(s.start)
}

func TestManualClockTestSuite(t *testing.T) {
	suite.Run(t, new(ManualClockTestSuite))
}

func (s *ManualClockTestSuite) TestAdvanceFiresInDeadlineOrder() {
	var fired []string
	s.clock.AfterFunc(2*time.Second, func() { fired = append(fired, "late") })
	s.clock.AfterFunc(time.Second, func() { fired = append(fired, "early") })

	s.clock.Advance(500 * time.Millisecond)
	s.Empty(fired)

	s.clock.Advance(2 * time.Second)
	s.Equal([]string{"early", "late"}, fired)
	s.Equal(s.start.Add(2500*time.Millisecond), s.clock.Now())
	s.Equal(0, s.clock.Pending())
}

func (s *ManualClockTestSuite) TestStopPreventsFire() {
	fired := false
	t := s.clock.AfterFunc(time.Second, func() { fired = true })

	s.True(t.Stop())
	s.False(t.Stop())

	s.clock.Advance(time.Minute)
	s.False(fired)
}

func (s *ManualClockTestSuite) TestCallbackCanReschedule() {
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.clock.AfterFunc(time.Second, tick)
		}
	}
	s.clock.AfterFunc(time.Second, tick)

	s.clock.Advance(10 * time.Second)
	s.Equal(3, count)
}
