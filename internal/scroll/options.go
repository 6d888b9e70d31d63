package scroll

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/easing"
)

// DefaultDuration is the animation length used when none is configured.
const DefaultDuration = 600 * time.Millisecond

// Options configures an animation.
type Options struct {
	// Duration is the animation length. Must be positive.
	Duration time.Duration
	// Easing maps elapsed fraction to progress. Its output is used as is.
	Easing easing.Func
	// Callback runs once when the animation completes naturally. It never
	// runs for cancelled or superseded animations.
	Callback func()
}

// DefaultOptions returns a 600ms circular ease-out with no callback.
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Easing:   easing.Default,
	}
}

// Option overrides one field of Options.
type Option func(*Options)

// WithDuration sets the animation length. Non-positive durations are ignored.
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			log.Warn().Dur("duration", d).Msg("Duration must be positive, keeping current value")
			return
		}
		o.Duration = d
	}
}

// WithEasing sets the easing function. A nil function is ignored.
func WithEasing(fn easing.Func) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		o.Easing = fn
	}
}

// WithCallback sets the completion callback. nil clears it.
func WithCallback(fn func()) Option {
	return func(o *Options) {
		o.Callback = fn
	}
}

// With returns a copy of o with opts applied.
func (o Options) With(opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
