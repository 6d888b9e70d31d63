package scroll

import (
	"fmt"
	"math"

	"github.com/Rorqualx/pisces/internal/types"
)

// clampDelta limits delta so that start+delta stays within [0, limit].
// A NaN delta moves nothing.
func clampDelta(start, delta, limit float64) float64 {
	if math.IsNaN(delta) {
		return 0
	}
	if start+delta > limit {
		return limit - start
	}
	if start+delta < 0 {
		return -start
	}
	return delta
}

// ResolveCoordinateValue converts one axis of a target into a delta from
// start. Absolute values and relative amounts are both clamped so the
// destination stays within [0, limit]; unset and invalid values yield 0.
func ResolveCoordinateValue(v Value, start, limit float64) float64 {
	switch v.kind {
	case valueAbsolute:
		return clampDelta(start, v.num-start, limit)
	case valueRelative:
		return clampDelta(start, v.num, limit)
	default:
		return 0
	}
}

// ResolveAbsolutePosition converts a Position into a delta from start.
// An unset axis stands for the current offset on that axis.
func ResolveAbsolutePosition(pos Position, start, limit Point) Point {
	x, y := pos.X, pos.Y
	if !x.IsSet() {
		x = Abs(start.X)
	}
	if !y.IsSet() {
		y = Abs(start.Y)
	}
	return Point{
		X: ResolveCoordinateValue(x, start.X, limit.X),
		Y: ResolveCoordinateValue(y, start.Y, limit.Y),
	}
}

// ResolveEdge returns the delta that reaches edge.
func ResolveEdge(edge Edge, start, limit Point) (Point, error) {
	switch edge {
	case EdgeTop:
		return Point{X: 0, Y: -start.Y}, nil
	case EdgeBottom:
		return Point{X: 0, Y: limit.Y - start.Y}, nil
	case EdgeLeft:
		return Point{X: -start.X, Y: 0}, nil
	case EdgeRight:
		return Point{X: limit.X - start.X, Y: 0}, nil
	default:
		return Point{}, fmt.Errorf("%w: %s", types.ErrInvalidEdge, edge)
	}
}

// ResolveElementTarget returns the delta that brings el to the box's scroll
// origin. It fails with types.ErrElementOutside when el is not inside box,
// unless box is the document body. The destination is clamped to limit.
func ResolveElementTarget(el Element, box Box, start, limit Point) (Point, error) {
	if !box.IsBody() {
		inside, err := box.Contains(el)
		if err != nil {
			return Point{}, fmt.Errorf("check containment: %w", err)
		}
		if !inside {
			return Point{}, types.ErrElementOutside
		}
	}

	offset, err := elementOffset(el, box)
	if err != nil {
		return Point{}, err
	}

	delta := offset.Sub(start)
	if start.X+delta.X > limit.X {
		delta.X = limit.X - start.X
	}
	if start.Y+delta.Y > limit.Y {
		delta.Y = limit.Y - start.Y
	}
	return delta, nil
}

// elementOffset sums offsets along el's offset parent chain until it reaches
// box. When the chain passes the box by (the box is not positioned), the
// result is rebased against the box's own document offset.
func elementOffset(el Element, box Box) (Point, error) {
	var sum Point
	for e := el; e != nil; {
		isBox, err := box.Is(e)
		if err != nil {
			return Point{}, fmt.Errorf("compare element: %w", err)
		}
		if isBox {
			return sum, nil
		}

		off, err := e.Offset()
		if err != nil {
			return Point{}, fmt.Errorf("read element offset: %w", err)
		}
		sum = sum.Add(off)

		e, err = e.OffsetParent()
		if err != nil {
			return Point{}, fmt.Errorf("read offset parent: %w", err)
		}
	}

	if box.IsBody() {
		return sum, nil
	}

	origin, err := documentOffset(box)
	if err != nil {
		return Point{}, err
	}
	return sum.Sub(origin), nil
}

// documentOffset sums offsets along el's whole offset parent chain.
func documentOffset(el Element) (Point, error) {
	var sum Point
	for e := el; e != nil; {
		off, err := e.Offset()
		if err != nil {
			return Point{}, fmt.Errorf("read element offset: %w", err)
		}
		sum = sum.Add(off)

		e, err = e.OffsetParent()
		if err != nil {
			return Point{}, fmt.Errorf("read offset parent: %w", err)
		}
	}
	return sum, nil
}
