package scroll

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorqualx/pisces/internal/frame"
	"github.com/Rorqualx/pisces/internal/types"
)

const frameStep = 16 * time.Millisecond

func newTestController(box Box, opts ...Option) (*Controller, *frame.Manual) {
	sched := frame.NewManual()
	c := New(box, sched, opts...)
	logger, _ := captureLogger()
	c.SetLogger(logger)
	return c, sched
}

func TestNew_Defaults(t *testing.T) {
	c, _ := newTestController(newFakeBox(&fakeNode{}, 0, 100))

	opts := c.Options()
	assert.Equal(t, 600*time.Millisecond, opts.Duration)
	assert.Nil(t, opts.Callback)
	require.NotNil(t, opts.Easing)
	assert.InDelta(t, 0.866, opts.Easing(0.5), 0.001)
	assert.False(t, c.Running())
}

func TestScrollToPosition_RelativeScenario(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToPosition(Position{Y: ParseValue("+200")}))
	assert.True(t, c.Running())

	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 200.0, box.scroll.Y)
	assert.Equal(t, 0.0, box.scroll.X)
	assert.False(t, c.Running())
	assert.Greater(t, sched.Now(), 600*time.Millisecond)
}

func TestScrollToPosition_ClampAboveMax(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 100, 100)
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToPosition(Position{X: Abs(500)}))
	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 100.0, box.scroll.X)
	for _, w := range box.writes {
		assert.LessOrEqual(t, w.X, 100.0)
	}
}

func TestScrollToPosition_RelativeClamp(t *testing.T) {
	for _, tt := range []struct {
		amount string
		want   float64
	}{
		{"+1000", 50},
		{"-1000", 0},
	} {
		t.Run(tt.amount, func(t *testing.T) {
			box := newFakeBox(&fakeNode{}, 0, 50)
			box.scroll.Y = 10
			c, sched := newTestController(box)

			require.NoError(t, c.ScrollToPosition(Position{Y: ParseValue(tt.amount)}))
			sched.RunUntilIdle(frameStep, 1000)

			assert.Equal(t, tt.want, box.scroll.Y)
		})
	}
}

func TestScrollToTop_ExactRegardlessOfEasing(t *testing.T) {
	curves := map[string]func(float64) float64{
		"default": nil,
		"stalls":  func(t float64) float64 { return 0.3 * t },
		"wild":    func(t float64) float64 { return 3*t - 2*t*t },
	}
	for name, curve := range curves {
		t.Run(name, func(t *testing.T) {
			box := newFakeBox(&fakeNode{}, 50, 900)
			box.scroll = Point{X: 20, Y: 733}
			c, sched := newTestController(box, WithEasing(curve))

			require.NoError(t, c.ScrollToTop())
			sched.RunUntilIdle(frameStep, 1000)

			assert.Equal(t, 0.0, box.scroll.Y)
			assert.Equal(t, 20.0, box.scroll.X, "top leaves the x axis alone")
		})
	}
}

func TestScrollToBottom_CompletionIsExact(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 777.25)
	// Never reaches 1 within the sampled frames.
	neverArrives := func(t float64) float64 { return 0.9 * t }
	c, sched := newTestController(box, WithEasing(neverArrives))

	require.NoError(t, c.ScrollToBottom())
	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 777.25, box.scroll.Y)
	last := box.writes[len(box.writes)-1]
	beforeLast := box.writes[len(box.writes)-2]
	assert.Equal(t, 777.25, last.Y)
	assert.NotEqual(t, last.Y, beforeLast.Y, "the eased sample is superseded by the exact destination")
}

func TestScrollToLeftRight(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 400, 0)
	box.scroll.X = 150
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToRight())
	sched.RunUntilIdle(frameStep, 1000)
	assert.Equal(t, 400.0, box.scroll.X)

	require.NoError(t, c.ScrollToLeft())
	sched.RunUntilIdle(frameStep, 1000)
	assert.Equal(t, 0.0, box.scroll.X)
}

func TestScrollTo_Supersession(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box)

	firstFrames := 0
	first := func(t float64) float64 {
		firstFrames++
		return t
	}
	require.NoError(t, c.ScrollToBottom(WithEasing(first)))
	sched.Advance(frameStep)
	sched.Advance(frameStep)
	require.Equal(t, 2, firstFrames)

	require.NoError(t, c.ScrollToPosition(Position{Y: Abs(100)}))
	c.Set() // no-op, keeps stored options untouched
	require.Equal(t, 1, sched.Len(), "only the new animation's frame is pending")

	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 2, firstFrames, "no frame of the first animation ran after the second started")
	assert.Equal(t, 100.0, box.scroll.Y)
}

func TestScrollTo_SupersededCallbackNeverRuns(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box)

	calls := map[string]int{}
	require.NoError(t, c.ScrollToBottom(WithCallback(func() { calls["first"]++ })))
	sched.Advance(frameStep)
	require.NoError(t, c.ScrollToTop(WithCallback(func() { calls["second"]++ })))
	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 0, calls["first"])
	assert.Equal(t, 1, calls["second"])
}

func TestCancel_Idempotent(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	box.scroll.Y = 42
	c, sched := newTestController(box)

	assert.NotPanics(t, func() {
		c.Cancel()
		c.Cancel()
	})
	assert.Equal(t, 42.0, box.scroll.Y)
	assert.Empty(t, box.writes)

	require.NoError(t, c.ScrollToTop())
	sched.RunUntilIdle(frameStep, 1000)
	require.Equal(t, 0.0, box.scroll.Y)
	writes := len(box.writes)

	assert.NotPanics(t, c.Cancel)
	assert.Equal(t, writes, len(box.writes))
	assert.Equal(t, 0.0, box.scroll.Y)
}

func TestCancel_StopsMidAnimation(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box, WithEasing(func(t float64) float64 { return t }))

	completed := false
	require.NoError(t, c.ScrollToBottom(WithCallback(func() { completed = true })))
	sched.Advance(150 * time.Millisecond)
	c.Cancel()

	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.Len())
	assert.InDelta(t, 250.0, box.scroll.Y, 0.001)

	sched.RunUntilIdle(frameStep, 100)
	assert.InDelta(t, 250.0, box.scroll.Y, 0.001)
	assert.False(t, completed, "callback never runs on cancellation")
}

func TestCallback_RunsOnceOnCompletion(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 300)
	calls := 0
	c, sched := newTestController(box, WithCallback(func() { calls++ }))

	require.NoError(t, c.ScrollToBottom())
	sched.RunUntilIdle(frameStep, 1000)
	sched.RunUntilIdle(frameStep, 10)

	assert.Equal(t, 1, calls)
}

func TestCallback_CanChainAnotherScroll(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 300)
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToBottom(WithCallback(func() {
		require.NoError(t, c.ScrollToPosition(Position{Y: By(-100)}))
	})))
	sched.RunUntilIdle(frameStep, 1000)

	assert.Equal(t, 200.0, box.scroll.Y)
	assert.False(t, c.Running())
}

func TestSet_AffectsLaterAnimationsOnly(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToBottom())
	c.Set(WithDuration(100 * time.Millisecond))
	assert.Equal(t, 100*time.Millisecond, c.Options().Duration)

	sched.Advance(200 * time.Millisecond)
	assert.True(t, c.Running(), "running animation keeps its 600ms duration")
	sched.RunUntilIdle(frameStep, 1000)

	require.NoError(t, c.ScrollToTop())
	startedAt := sched.Now()
	sched.RunUntilIdle(frameStep, 1000)
	assert.LessOrEqual(t, sched.Now()-startedAt, 100*time.Millisecond+2*frameStep)
}

func TestPerCallOptions_DoNotMutateStored(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 1000)
	c, sched := newTestController(box)

	require.NoError(t, c.ScrollToBottom(WithDuration(50*time.Millisecond)))
	assert.Equal(t, DefaultDuration, c.Options().Duration)

	frames := sched.RunUntilIdle(frameStep, 1000)
	assert.LessOrEqual(t, frames, 5)
}

func TestWithDuration_IgnoresNonPositive(t *testing.T) {
	opts := DefaultOptions().With(WithDuration(0), WithDuration(-time.Second), WithEasing(nil))
	assert.Equal(t, DefaultDuration, opts.Duration)
	assert.NotNil(t, opts.Easing)
}

func TestEasingOvershootIsWrittenVerbatim(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	overshoot := func(t float64) float64 { return 1.5 * t }
	c, sched := newTestController(box, WithEasing(overshoot))

	require.NoError(t, c.ScrollToBottom())
	sched.RunUntilIdle(frameStep, 1000)

	peak := 0.0
	for _, w := range box.writes {
		peak = max(peak, w.Y)
	}
	assert.Greater(t, peak, 100.0)
	assert.Equal(t, 100.0, box.scroll.Y)
}

func TestEasingPanicPropagates(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	c, sched := newTestController(box, WithEasing(func(float64) float64 { panic("bad curve") }))

	require.NoError(t, c.ScrollToBottom())
	assert.PanicsWithValue(t, "bad curve", func() { sched.Advance(frameStep) })
	assert.False(t, c.Running(), "a panicking frame leaves the animator idle")
	assert.Zero(t, sched.Len())

	// The animator is still usable afterwards.
	assert.NotPanics(t, c.Cancel)
	require.NoError(t, c.ScrollToTop(WithEasing(func(t float64) float64 { return t })))
	sched.RunUntilIdle(frameStep, 1000)
	assert.Equal(t, 0.0, box.scroll.Y)
}

func TestLateFrameWritesOnlyTheDestination(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	c, sched := newTestController(box, WithDuration(10*time.Millisecond))

	require.NoError(t, c.ScrollToBottom())
	// One frame arrives well past twice the duration.
	sched.Advance(50 * time.Millisecond)

	assert.Equal(t, []Point{{X: 0, Y: 100}}, box.writes)
	assert.False(t, c.Running())
}

func TestWriteFailuresDoNotStopPlayback(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	box.failWrite = true
	done := false
	c, sched := newTestController(box, WithCallback(func() { done = true }))

	require.NoError(t, c.ScrollToBottom())
	sched.RunUntilIdle(frameStep, 1000)

	assert.True(t, done)
	assert.Greater(t, len(box.writes), 2)
}

func TestScrollTo_NilTarget(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	box.scroll = Point{X: 0, Y: 30}
	sched := frame.NewManual()
	c := New(box, sched)
	logger, buf := captureLogger()
	c.SetLogger(logger)

	err := c.ScrollTo(nil)

	require.ErrorIs(t, err, types.ErrTargetRequired)
	assert.Contains(t, buf.String(), "target param is required")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Equal(t, Point{X: 0, Y: 30}, box.scroll)
	assert.Empty(t, box.writes)
	assert.Equal(t, 0, sched.Len())

	var nilPos *Position
	assert.ErrorIs(t, c.ScrollTo(nilPos), types.ErrTargetRequired)
	assert.ErrorIs(t, c.ScrollToElement(nil), types.ErrTargetRequired)
}

func TestSetLogger_ConcurrentWithRejects(t *testing.T) {
	c, _ := newTestController(newFakeBox(&fakeNode{}, 0, 100))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			c.SetLogger(zerolog.Nop())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.ErrorIs(t, c.ScrollTo(nil), types.ErrTargetRequired)
		}
	}()
	wg.Wait()
}

func TestScrollTo_InvalidType(t *testing.T) {
	box := newFakeBox(&fakeNode{}, 0, 100)
	c, sched := newTestController(box)
	logger, buf := captureLogger()
	c.SetLogger(logger)

	err := c.ScrollTo(42)

	require.ErrorIs(t, err, types.ErrInvalidTarget)
	assert.Contains(t, buf.String(), "target param should be")
	assert.Contains(t, buf.String(), `"target":"int"`)
	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.Len())
}

func TestScrollTo_Dispatch(t *testing.T) {
	t.Run("selector", func(t *testing.T) {
		f := newFixture(800)
		c, sched := newTestController(f.box)

		require.NoError(t, c.ScrollTo("li:nth-child(5)"))
		sched.RunUntilIdle(frameStep, 1000)
		assert.Equal(t, 200.0, f.box.scroll.Y)
	})

	t.Run("selector miss", func(t *testing.T) {
		f := newFixture(800)
		c, _ := newTestController(f.box)
		logger, buf := captureLogger()
		c.SetLogger(logger)

		err := c.ScrollTo("#nope")
		require.ErrorIs(t, err, types.ErrSelectorNoMatch)
		assert.Contains(t, buf.String(), "#nope")
		assert.False(t, c.Running())
	})

	t.Run("element", func(t *testing.T) {
		f := newFixture(800)
		c, sched := newTestController(f.box)

		require.NoError(t, c.ScrollTo(f.items[10]))
		sched.RunUntilIdle(frameStep, 1000)
		assert.Equal(t, 500.0, f.box.scroll.Y)
	})

	t.Run("position", func(t *testing.T) {
		f := newFixture(800)
		c, sched := newTestController(f.box)

		require.NoError(t, c.ScrollTo(Position{Y: Abs(321)}))
		sched.RunUntilIdle(frameStep, 1000)
		assert.Equal(t, 321.0, f.box.scroll.Y)
	})

	t.Run("position pointer", func(t *testing.T) {
		f := newFixture(800)
		c, sched := newTestController(f.box)

		require.NoError(t, c.ScrollTo(&Position{Y: By(75)}))
		sched.RunUntilIdle(frameStep, 1000)
		assert.Equal(t, 75.0, f.box.scroll.Y)
	})

	t.Run("edge", func(t *testing.T) {
		f := newFixture(800)
		c, sched := newTestController(f.box)

		require.NoError(t, c.ScrollTo(EdgeBottom))
		sched.RunUntilIdle(frameStep, 1000)
		assert.Equal(t, 800.0, f.box.scroll.Y)
	})

	t.Run("invalid edge", func(t *testing.T) {
		f := newFixture(800)
		c, _ := newTestController(f.box)
		assert.ErrorIs(t, c.ScrollTo(Edge(7)), types.ErrInvalidTarget)
	})
}

func TestScrollToElement_Sibling(t *testing.T) {
	f := newFixture(800)
	sched := frame.NewManual()
	c := New(f.box, sched)
	logger, buf := captureLogger()
	c.SetLogger(logger)

	err := c.ScrollToElement(f.sibling)

	require.ErrorIs(t, err, types.ErrElementOutside)
	assert.Contains(t, buf.String(), "scrolling box does not contain element")
	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.Len())
	assert.Empty(t, f.box.writes)
}

func TestScrollToElement_ClampedAtBottom(t *testing.T) {
	f := newFixture(600)
	c, sched := newTestController(f.box)

	require.NoError(t, c.ScrollToElement(f.items[19]))
	sched.RunUntilIdle(frameStep, 1000)
	assert.Equal(t, 600.0, f.box.scroll.Y)
}

func TestNewForDocument(t *testing.T) {
	native := newFakeBox(&fakeNode{name: "html"}, 0, 500)
	c, err := NewForDocument(&fakeDocument{native: native}, frame.NewManual())
	require.NoError(t, err)
	assert.Same(t, native, c.Box())
}
