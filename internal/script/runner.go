package script

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/types"
)

// PresetResolver turns a preset name into controller options.
type PresetResolver interface {
	Resolve(name string) ([]scroll.Option, error)
}

// Runner plays scripts on one controller.
type Runner struct {
	ctrl    *scroll.Controller
	presets PresetResolver
	logger  zerolog.Logger
}

// NewRunner creates a runner. presets may be nil when scripts name none.
func NewRunner(ctrl *scroll.Controller, presets PresetResolver) *Runner {
	return &Runner{
		ctrl:    ctrl,
		presets: presets,
		logger:  log.Logger.With().Str("component", "script").Logger(),
	}
}

// Run plays s to the end. Each scrolling step waits for its animation to
// complete before the next starts. Cancelling ctx stops the running
// animation and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, s *Script) error {
	rounds := max(s.Repeat, 1)

	r.logger.Info().
		Str("script", s.Name).
		Int("steps", len(s.Steps)).
		Int("repeat", rounds).
		Msg("Playing scroll script")

	for round := 0; round < rounds; round++ {
		for i, step := range s.Steps {
			if err := r.runStep(ctx, step); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, step, err)
			}
		}
	}

	r.logger.Info().Str("script", s.Name).Msg("Scroll script finished")
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if step.HasTarget() {
		opts, err := r.options(step)
		if err != nil {
			return err
		}

		done := make(chan struct{})
		opts = append(opts, scroll.WithCallback(func() { close(done) }))

		started := time.Now()
		if err := r.ctrl.ScrollTo(step.Target(), opts...); err != nil {
			return err
		}

		select {
		case <-done:
			r.logger.Debug().
				Str("step", step.String()).
				Dur("took", time.Since(started)).
				Msg("Step completed")
		case <-ctx.Done():
			r.ctrl.Cancel()
			return fmt.Errorf("%w: %w", types.ErrAnimationAborted, ctx.Err())
		}
	}

	return sleep(ctx, step.Wait)
}

// options builds the per-step overrides: preset, then explicit fields.
func (r *Runner) options(step Step) ([]scroll.Option, error) {
	var opts []scroll.Option
	if step.Preset != "" {
		if r.presets == nil {
			return nil, fmt.Errorf("preset %q: no presets configured", step.Preset)
		}
		p, err := r.presets.Resolve(step.Preset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, p...)
	}
	if step.Duration > 0 {
		opts = append(opts, scroll.WithDuration(step.Duration))
	}
	if step.Easing != "" {
		fn, ok := easing.Lookup(step.Easing)
		if !ok {
			return nil, fmt.Errorf("unknown easing %q", step.Easing)
		}
		opts = append(opts, scroll.WithEasing(fn))
	}
	return opts, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
