package scroll

import (
	"bytes"
	"errors"

	"github.com/rs/zerolog"
)

// fakeNode is an element in an in-memory DOM. parent is the DOM parent,
// offParent the offset parent (nil at the top of the chain).
type fakeNode struct {
	name      string
	offset    Point
	parent    *fakeNode
	offParent *fakeNode
}

func (n *fakeNode) Offset() (Point, error) {
	return n.offset, nil
}

func (n *fakeNode) OffsetParent() (Element, error) {
	if n.offParent == nil {
		return nil, nil
	}
	return n.offParent, nil
}

// child creates a node under n. When positioned is true n is the offset
// parent, otherwise offsets are taken relative to n's offset parent.
func (n *fakeNode) child(name string, offset Point, positioned bool) *fakeNode {
	c := &fakeNode{name: name, offset: offset, parent: n}
	if positioned {
		c.offParent = n
	} else {
		c.offParent = n.offParent
	}
	return c
}

var errWriteRejected = errors.New("write rejected")

// fakeBox is a scrolling box wrapping a fakeNode.
type fakeBox struct {
	node      *fakeNode
	scroll    Point
	extent    Extent
	body      bool
	frozen    bool
	failWrite bool
	selectors map[string]*fakeNode
	writes    []Point
}

// newFakeBox returns a 100x100 box that can scroll up to maxX/maxY.
func newFakeBox(node *fakeNode, maxX, maxY float64) *fakeBox {
	return &fakeBox{
		node: node,
		extent: Extent{
			ScrollWidth:  100 + maxX,
			ScrollHeight: 100 + maxY,
			ClientWidth:  100,
			ClientHeight: 100,
		},
		selectors: make(map[string]*fakeNode),
	}
}

func (b *fakeBox) Offset() (Point, error)         { return b.node.Offset() }
func (b *fakeBox) OffsetParent() (Element, error) { return b.node.OffsetParent() }
func (b *fakeBox) ScrollOffset() (Point, error)   { return b.scroll, nil }
func (b *fakeBox) Extent() (Extent, error)        { return b.extent, nil }
func (b *fakeBox) IsBody() bool                   { return b.body }

func (b *fakeBox) SetScrollOffset(p Point) error {
	b.writes = append(b.writes, p)
	if b.failWrite {
		return errWriteRejected
	}
	if !b.frozen {
		b.scroll = p
	}
	return nil
}

func (b *fakeBox) Is(el Element) (bool, error) {
	switch e := el.(type) {
	case *fakeNode:
		return e == b.node, nil
	case *fakeBox:
		return e == b, nil
	}
	return false, nil
}

func (b *fakeBox) Contains(el Element) (bool, error) {
	var n *fakeNode
	switch e := el.(type) {
	case *fakeNode:
		n = e
	case *fakeBox:
		n = e.node
	}
	for ; n != nil; n = n.parent {
		if n == b.node {
			return true, nil
		}
	}
	return false, nil
}

func (b *fakeBox) Query(selector string) (Element, error) {
	if n, ok := b.selectors[selector]; ok {
		return n, nil
	}
	return nil, nil
}

// fakeDocument serves fixed boxes for root detection.
type fakeDocument struct {
	native *fakeBox
	root   *fakeBox
	body   *fakeBox
}

func (d *fakeDocument) ScrollingElement() (Box, error) {
	if d.native == nil {
		return nil, nil
	}
	return d.native, nil
}

func (d *fakeDocument) DocumentElement() (Box, error) { return boxOrNil(d.root), nil }
func (d *fakeDocument) Body() (Box, error)            { return boxOrNil(d.body), nil }

func boxOrNil(b *fakeBox) Box {
	if b == nil {
		return nil
	}
	return b
}

// fixture is a page with a positioned scrolling box holding 20 items 50px
// apart, and a sibling element outside the box.
type fixture struct {
	body    *fakeNode
	box     *fakeBox
	items   []*fakeNode
	sibling *fakeNode
}

func newFixture(maxY float64) *fixture {
	body := &fakeNode{name: "body"}
	boxNode := body.child("div.box", Point{X: 0, Y: 40}, true)
	box := newFakeBox(boxNode, 0, maxY)

	f := &fixture{body: body, box: box}
	for i := 0; i < 20; i++ {
		item := boxNode.child("li", Point{X: 0, Y: float64(i) * 50}, true)
		f.items = append(f.items, item)
	}
	box.selectors["li:nth-child(5)"] = f.items[4]
	f.sibling = body.child("aside", Point{X: 0, Y: 900}, true)
	return f
}

func captureLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf), buf
}
