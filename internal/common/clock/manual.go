package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock that only moves when told to. Scheduled functions run
// synchronously inside Advance, in deadline order, so tests can step through
// debounce windows without sleeping.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewManual creates a manual clock positioned at now
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns the manual clock's current time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has been advanced by d
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		clock:    m,
		deadline: m.now.Add(d),
		seq:      m.seq,
		fn:       f,
	}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward and fires every timer whose deadline has
// been reached
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.pending, func(i, j int) bool {
			if m.pending[i].deadline.Equal(m.pending[j].deadline) {
				return m.pending[i].seq < m.pending[j].seq
			}
			return m.pending[i].deadline.Before(m.pending[j].deadline)
		})

		var next *manualTimer
		if len(m.pending) > 0 && !m.pending[0].deadline.After(target) {
			next = m.pending[0]
			m.pending = m.pending[1:]
			m.now = next.deadline
		}
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.fired = true
		m.mu.Unlock()

		// Run outside the lock so the callback can schedule new timers
		next.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	for i, p := range t.clock.pending {
		if p == t {
			t.clock.pending = append(t.clock.pending[:i], t.clock.pending[i+1:]...)
			break
		}
	}
	return true
}
