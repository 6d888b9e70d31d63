package scroll

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/frame"
	"github.com/Rorqualx/pisces/internal/metrics"
	"github.com/Rorqualx/pisces/internal/types"
)

// Controller animates one scrolling box.
//
// Every ScrollTo* call resolves its target against the box's current scroll
// position and bounds, then starts an animation that replaces any animation
// still running. The methods return once the animation has started; use
// WithCallback to learn when it completes. Invalid targets are logged at
// error level and returned without touching the box.
type Controller struct {
	box      Box
	animator *Animator

	mu      sync.Mutex // guards logger and options
	logger  zerolog.Logger
	options Options
}

// New creates a controller for box. opts are applied over DefaultOptions.
func New(box Box, sched frame.Scheduler, opts ...Option) *Controller {
	logger := log.Logger.With().Str("component", "scroll").Logger()
	return &Controller{
		box:      box,
		animator: NewAnimator(box, sched, logger),
		logger:   logger,
		options:  DefaultOptions().With(opts...),
	}
}

// NewForDocument creates a controller for the document's root scrolling box.
func NewForDocument(doc Document, sched frame.Scheduler, opts ...Option) (*Controller, error) {
	box, err := DetectRoot(doc)
	if err != nil {
		return nil, err
	}
	return New(box, sched, opts...), nil
}

// SetLogger replaces the logger used for the error channel and debug output.
func (c *Controller) SetLogger(logger zerolog.Logger) {
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
	c.animator.mu.Lock()
	c.animator.logger = logger
	c.animator.mu.Unlock()
}

// Box returns the scrolling box.
func (c *Controller) Box() Box {
	return c.box
}

// Options returns a snapshot of the stored configuration.
func (c *Controller) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Set updates the stored configuration. Animations already running keep
// the options they started with.
func (c *Controller) Set(opts ...Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = c.options.With(opts...)
}

// Cancel stops the running animation, if any.
func (c *Controller) Cancel() {
	c.animator.Cancel()
}

// Running reports whether an animation is in flight.
func (c *Controller) Running() bool {
	return c.animator.Running()
}

// ScrollTo dispatches on the shape of target: a selector string (queried
// inside the box), an Element, a Position (or *Position) or an Edge.
func (c *Controller) ScrollTo(target any, opts ...Option) error {
	const op = "scrollTo"

	switch t := target.(type) {
	case nil:
		return c.reject(types.NewTargetRequiredError(op), "required")
	case string:
		el, err := c.box.Query(t)
		if err != nil {
			return fmt.Errorf("query %q: %w", t, err)
		}
		if el == nil {
			return c.reject(types.NewSelectorNoMatchError(op, t), "no_match")
		}
		return c.ScrollToElement(el, opts...)
	case Element:
		return c.ScrollToElement(t, opts...)
	case Position:
		return c.ScrollToPosition(t, opts...)
	case *Position:
		if t == nil {
			return c.reject(types.NewTargetRequiredError(op), "required")
		}
		return c.ScrollToPosition(*t, opts...)
	case Edge:
		return c.ScrollToEdge(t, opts...)
	default:
		return c.reject(types.NewInvalidTargetError(op, fmt.Sprintf("%T", target)), "invalid_type")
	}
}

// ScrollToElement scrolls until el sits at the box's scroll origin, as far
// as the bounds allow.
func (c *Controller) ScrollToElement(el Element, opts ...Option) error {
	const op = "scrollToElement"
	if el == nil {
		return c.reject(types.NewTargetRequiredError(op), "required")
	}

	start, limit, err := c.position()
	if err != nil {
		return err
	}

	end, err := ResolveElementTarget(el, c.box, start, limit)
	if errors.Is(err, types.ErrElementOutside) {
		return c.reject(types.NewElementOutsideError(op, fmt.Sprintf("%T", el)), "outside")
	}
	if err != nil {
		return err
	}

	c.animate(op, Coords{Start: start, End: end}, opts)
	return nil
}

// ScrollToPosition scrolls to pos. Unset axes stay where they are.
func (c *Controller) ScrollToPosition(pos Position, opts ...Option) error {
	start, limit, err := c.position()
	if err != nil {
		return err
	}

	end := ResolveAbsolutePosition(pos, start, limit)
	c.animate("scrollToPosition", Coords{Start: start, End: end}, opts)
	return nil
}

// ScrollToEdge scrolls to one of the four extremes of the box.
func (c *Controller) ScrollToEdge(edge Edge, opts ...Option) error {
	start, limit, err := c.position()
	if err != nil {
		return err
	}

	end, err := ResolveEdge(edge, start, limit)
	if err != nil {
		return c.reject(&types.TargetError{
			Op:      "scrollToEdge",
			Target:  edge.String(),
			Message: err.Error(),
			Err:     types.ErrInvalidTarget,
		}, "invalid_edge")
	}

	c.animate("scrollTo"+edgeOps[edge], Coords{Start: start, End: end}, opts)
	return nil
}

var edgeOps = map[Edge]string{
	EdgeTop:    "Top",
	EdgeBottom: "Bottom",
	EdgeLeft:   "Left",
	EdgeRight:  "Right",
}

// ScrollToTop scrolls to the top edge.
func (c *Controller) ScrollToTop(opts ...Option) error {
	return c.ScrollToEdge(EdgeTop, opts...)
}

// ScrollToBottom scrolls to the bottom edge.
func (c *Controller) ScrollToBottom(opts ...Option) error {
	return c.ScrollToEdge(EdgeBottom, opts...)
}

// ScrollToLeft scrolls to the left edge.
func (c *Controller) ScrollToLeft(opts ...Option) error {
	return c.ScrollToEdge(EdgeLeft, opts...)
}

// ScrollToRight scrolls to the right edge.
func (c *Controller) ScrollToRight(opts ...Option) error {
	return c.ScrollToEdge(EdgeRight, opts...)
}

// position reads the current scroll offset and the scroll bounds.
func (c *Controller) position() (start, limit Point, err error) {
	start, err = c.box.ScrollOffset()
	if err != nil {
		return Point{}, Point{}, fmt.Errorf("read scroll offset: %w", err)
	}
	extent, err := c.box.Extent()
	if err != nil {
		return Point{}, Point{}, fmt.Errorf("read scroll extent: %w", err)
	}
	return start, extent.Max(c.box.IsBody()), nil
}

// animate merges per-call options over the stored ones and starts playback.
func (c *Controller) animate(op string, coords Coords, opts []Option) {
	merged := c.Options().With(opts...)
	metrics.RecordAnimationStarted(op)
	c.animator.Start(coords, merged)
}

// reject logs err on the error channel and returns it.
func (c *Controller) reject(err *types.TargetError, reason string) error {
	metrics.RecordInvalidTarget(reason)
	c.mu.Lock()
	logger := c.logger
	c.mu.Unlock()
	logger.Error().
		Str("op", err.Op).
		Str("target", err.Target).
		Msg(err.Message)
	return err
}
