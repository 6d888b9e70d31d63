package frame

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInterval approximates a 60Hz display refresh.
const DefaultInterval = 16 * time.Millisecond

// Loop delivers queued frames from a wall-clock ticker.
type Loop struct {
	*Queue
	interval time.Duration
	origin   time.Time
}

// NewLoop creates a loop that flushes its queue every interval.
// A non-positive interval falls back to DefaultInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		Queue:    NewQueue(),
		interval: interval,
		origin:   time.Now(),
	}
}

// Now returns the time elapsed since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.origin)
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Run delivers frames until ctx is canceled. It returns ctx.Err().
// Frame callbacks run on the goroutine that called Run.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Debug().Dur("interval", l.interval).Msg("Frame loop started")

	for {
		select {
		case <-ticker.C:
			l.Flush(l.Now())
		case <-ctx.Done():
			log.Debug().Msg("Frame loop stopped")
			return ctx.Err()
		}
	}
}
