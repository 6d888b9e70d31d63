package scroll

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rorqualx/pisces/internal/frame"
	"github.com/Rorqualx/pisces/internal/metrics"
)

// ScrollWriter receives interpolated scroll offsets.
type ScrollWriter interface {
	SetScrollOffset(p Point) error
}

// animation is one run from Start until completion or cancellation.
type animation struct {
	coords    Coords
	opts      Options
	startTime time.Duration
}

// Animator plays at most one animation at a time on a ScrollWriter.
// Starting a new animation cancels the running one.
type Animator struct {
	mu      sync.Mutex
	writer  ScrollWriter
	sched   frame.Scheduler
	logger  zerolog.Logger
	current *animation
	frameID frame.ID
}

// NewAnimator creates an idle animator.
func NewAnimator(w ScrollWriter, sched frame.Scheduler, logger zerolog.Logger) *Animator {
	return &Animator{
		writer: w,
		sched:  sched,
		logger: logger,
	}
}

// Start begins animating from coords.Start by coords.End, replacing any
// animation already running. opts must carry a positive duration and an
// easing function.
func (a *Animator) Start(coords Coords, opts Options) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancelLocked() {
		metrics.RecordAnimationFinished(metrics.OutcomeSuperseded, 0)
		a.logger.Debug().Msg("Superseded running animation")
	}

	anim := &animation{
		coords:    coords,
		opts:      opts,
		startTime: a.sched.Now(),
	}
	a.current = anim
	a.frameID = a.sched.Request(func(now time.Duration) { a.step(anim, now) })

	a.logger.Debug().
		Float64("from_x", coords.Start.X).
		Float64("from_y", coords.Start.Y).
		Float64("delta_x", coords.End.X).
		Float64("delta_y", coords.End.Y).
		Dur("duration", opts.Duration).
		Msg("Starting smooth scroll")
}

// Cancel stops the running animation, leaving the scroll position where the
// last frame put it. It is a no-op when idle.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancelLocked() {
		metrics.RecordAnimationFinished(metrics.OutcomeCancelled, 0)
		a.logger.Debug().Msg("Smooth scroll cancelled")
	}
}

// Running reports whether an animation is in flight.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current != nil
}

// cancelLocked revokes the outstanding frame. Callers hold mu.
func (a *Animator) cancelLocked() bool {
	if a.current == nil {
		return false
	}
	a.sched.Cancel(a.frameID)
	a.current = nil
	a.frameID = 0
	return true
}

// step runs one frame of anim. The completion callback is invoked after the
// lock is released so it may start another animation.
func (a *Animator) step(anim *animation, now time.Duration) {
	if callback := a.advance(anim, now); callback != nil {
		callback()
	}
}

// advance writes the frame for now and either requests the next frame or
// completes the animation, returning its callback.
func (a *Animator) advance(anim *animation, now time.Duration) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != anim {
		return nil
	}

	// Idle until the frame succeeds, so a panicking easing leaves no
	// animation behind.
	a.current = nil
	a.frameID = 0

	elapsed := now - anim.startTime
	if elapsed < 0 {
		elapsed = -elapsed
	}

	// Past the duration only the exact destination is written.
	if elapsed > anim.opts.Duration {
		a.write(anim.coords.Final())
		metrics.RecordAnimationFinished(metrics.OutcomeCompleted, elapsed)
		a.logger.Debug().
			Float64("target_x", anim.coords.Final().X).
			Float64("target_y", anim.coords.Final().Y).
			Msg("Smooth scroll completed")
		return anim.opts.Callback
	}

	progress := anim.opts.Easing(float64(elapsed) / float64(anim.opts.Duration))
	a.write(anim.coords.At(progress))

	a.current = anim
	a.frameID = a.sched.Request(func(ts time.Duration) { a.step(anim, ts) })
	return nil
}

// write applies p to the box. Host failures are logged and playback continues.
func (a *Animator) write(p Point) {
	err := a.writer.SetScrollOffset(p)
	metrics.RecordFrame(err)
	if err != nil {
		a.logger.Debug().Err(err).Msg("Scroll step failed")
	}
}
