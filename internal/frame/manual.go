package frame

import (
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when told to.
// Tests use it to step animations frame by frame.
type Manual struct {
	*Queue
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual scheduler with its clock at zero.
func NewManual() *Manual {
	return &Manual{Queue: NewQueue()}
}

// Now returns the manual clock.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and delivers one frame.
// It returns the number of callbacks that ran.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()

	return m.Flush(now)
}

// RunUntilIdle delivers frames every step until no requests remain or limit
// frames have been delivered. It returns the number of frames delivered.
func (m *Manual) RunUntilIdle(step time.Duration, limit int) int {
	frames := 0
	for frames < limit && m.Len() > 0 {
		m.Advance(step)
		frames++
	}
	return frames
}
