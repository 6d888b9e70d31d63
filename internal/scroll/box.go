// Package scroll animates the scroll position of a scrolling box toward an
// element, a coordinate pair or one of its edges.
//
// A Controller resolves a target into a clamped delta from the current scroll
// position and hands it to an Animator, which interpolates the position frame
// by frame with an easing function and writes the exact destination when the
// duration has elapsed. Hosts (a browser page, a terminal viewport) implement
// Box and Element; frames come from a frame.Scheduler.
package scroll

// Point is an (x, y) pair in scroll coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Coords describes one animation: the scroll position when it started and
// the delta to travel from there.
type Coords struct {
	Start Point
	End   Point
}

// At returns the position after progress of the delta has been travelled.
// progress is not clamped.
func (c Coords) At(progress float64) Point {
	return c.Start.Add(c.End.Scale(progress))
}

// Final returns the destination, Start+End.
func (c Coords) Final() Point {
	return c.Start.Add(c.End)
}

// Element is a node that can be scrolled into place.
type Element interface {
	// Offset returns the element's offsetLeft and offsetTop.
	Offset() (Point, error)
	// OffsetParent returns the element's offset parent. It must return an
	// untyped nil when the element has none.
	OffsetParent() (Element, error)
}

// Extent holds the sizes used to derive the maximum scroll offset.
type Extent struct {
	ScrollWidth  float64
	ScrollHeight float64
	ClientWidth  float64
	ClientHeight float64
	// WindowWidth and WindowHeight are the window's inner size. They replace
	// the client size when the box is the document body.
	WindowWidth  float64
	WindowHeight float64
}

// Max returns the largest legal scroll offset per axis, never negative.
func (e Extent) Max(body bool) Point {
	viewW, viewH := e.ClientWidth, e.ClientHeight
	if body {
		viewW, viewH = e.WindowWidth, e.WindowHeight
	}
	return Point{
		X: max(0, e.ScrollWidth-viewW),
		Y: max(0, e.ScrollHeight-viewH),
	}
}

// Box is a scrollable container.
type Box interface {
	Element

	// ScrollOffset returns scrollLeft and scrollTop.
	ScrollOffset() (Point, error)
	// SetScrollOffset writes scrollLeft and scrollTop.
	SetScrollOffset(p Point) error
	// Extent returns the box's scroll and viewport sizes.
	Extent() (Extent, error)
	// IsBody reports whether the box is the document body.
	IsBody() bool
	// Is reports whether el is the box itself.
	Is(el Element) (bool, error)
	// Contains reports whether el is the box or one of its descendants.
	Contains(el Element) (bool, error)
	// Query returns the first descendant matching selector, or nil.
	Query(selector string) (Element, error)
}

// Document locates the candidate root scrolling boxes of a page.
type Document interface {
	// ScrollingElement returns the host's native "element that scrolls the
	// page", or nil when the host does not expose one.
	ScrollingElement() (Box, error)
	// DocumentElement returns the document root.
	DocumentElement() (Box, error)
	// Body returns the document body.
	Body() (Box, error)
}
