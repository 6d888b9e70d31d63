package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/Rorqualx/pisces/internal/scroll"
)

// Element is a DOM element in a page.
type Element struct {
	el   *rod.Element
	page *rod.Page
}

// NewElement wraps el.
func NewElement(el *rod.Element) *Element {
	return &Element{el: el, page: el.Page()}
}

// Offset returns offsetLeft/offsetTop.
func (e *Element) Offset() (scroll.Point, error) {
	res, err := e.el.Eval(`() => ({x: this.offsetLeft, y: this.offsetTop})`)
	if err != nil {
		return scroll.Point{}, fmt.Errorf("read offset: %w", err)
	}
	return decodePoint(res.Value), nil
}

// OffsetParent returns the offset parent, or nil at the top of the chain.
func (e *Element) OffsetParent() (scroll.Element, error) {
	el, err := e.evalElement(`() => this.offsetParent`)
	if err != nil || el == nil {
		return nil, err
	}
	return el, nil
}

// evalElement runs js with this bound to e and wraps the resulting element.
// A null or undefined result returns a nil *Element.
func (e *Element) evalElement(js string) (*Element, error) {
	obj, err := e.el.Evaluate(rod.Eval(js).ByObject())
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", js, err)
	}
	return wrapObject(e.page, obj)
}

// Box is a scrolling box: an element whose scrollLeft/scrollTop move.
type Box struct {
	*Element
	body bool
}

// NewBox wraps el as a scrolling box.
func NewBox(el *rod.Element) (*Box, error) {
	e := NewElement(el)
	res, err := el.Eval(`() => this === document.body`)
	if err != nil {
		return nil, fmt.Errorf("inspect scrolling box: %w", err)
	}
	return &Box{Element: e, body: res.Value.Bool()}, nil
}

// ScrollOffset returns scrollLeft/scrollTop.
func (b *Box) ScrollOffset() (scroll.Point, error) {
	res, err := b.el.Eval(`() => ({x: this.scrollLeft, y: this.scrollTop})`)
	if err != nil {
		return scroll.Point{}, fmt.Errorf("read scroll offset: %w", err)
	}
	return decodePoint(res.Value), nil
}

// SetScrollOffset writes scrollLeft/scrollTop.
func (b *Box) SetScrollOffset(p scroll.Point) error {
	_, err := b.el.Eval(`(x, y) => { this.scrollLeft = x; this.scrollTop = y }`, p.X, p.Y)
	if err != nil {
		return fmt.Errorf("write scroll offset: %w", err)
	}
	return nil
}

// Extent returns the content, client and window sizes.
func (b *Box) Extent() (scroll.Extent, error) {
	res, err := b.el.Eval(`() => ({
		scrollWidth: this.scrollWidth,
		scrollHeight: this.scrollHeight,
		clientWidth: this.clientWidth,
		clientHeight: this.clientHeight,
		windowWidth: window.innerWidth,
		windowHeight: window.innerHeight,
	})`)
	if err != nil {
		return scroll.Extent{}, fmt.Errorf("read scroll extent: %w", err)
	}
	return decodeExtent(res.Value), nil
}

// IsBody reports whether the box is document.body.
func (b *Box) IsBody() bool {
	return b.body
}

// Is reports whether el is the box itself.
func (b *Box) Is(el scroll.Element) (bool, error) {
	return b.compare(`(other) => this === other`, el)
}

// Contains reports whether el is the box or one of its descendants.
func (b *Box) Contains(el scroll.Element) (bool, error) {
	return b.compare(`(other) => this.contains(other)`, el)
}

func (b *Box) compare(js string, el scroll.Element) (bool, error) {
	other, ok := asElement(el)
	if !ok {
		return false, nil
	}
	res, err := b.el.Eval(js, other.el.Object)
	if err != nil {
		return false, fmt.Errorf("compare elements: %w", err)
	}
	return res.Value.Bool(), nil
}

// Query returns the first descendant matching selector, or nil.
// It does not wait for the element to appear.
func (b *Box) Query(selector string) (scroll.Element, error) {
	els, err := b.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if els.Empty() {
		return nil, nil
	}
	return NewElement(els.First()), nil
}

// Document resolves the page's root scrolling candidates.
type Document struct {
	page *rod.Page
}

// NewDocument wraps page.
func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

// ScrollingElement returns document.scrollingElement, or nil where the
// browser lacks it.
func (d *Document) ScrollingElement() (scroll.Box, error) {
	return d.box(`() => document.scrollingElement`)
}

// DocumentElement returns document.documentElement.
func (d *Document) DocumentElement() (scroll.Box, error) {
	return d.box(`() => document.documentElement`)
}

// Body returns document.body.
func (d *Document) Body() (scroll.Box, error) {
	return d.box(`() => document.body`)
}

func (d *Document) box(js string) (scroll.Box, error) {
	obj, err := d.page.Evaluate(rod.Eval(js).ByObject())
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", js, err)
	}
	el, err := wrapObject(d.page, obj)
	if err != nil || el == nil {
		return nil, err
	}
	return NewBox(el.el)
}

// wrapObject turns a remote object into an Element. null and undefined
// yield a nil *Element.
func wrapObject(page *rod.Page, obj *proto.RuntimeRemoteObject) (*Element, error) {
	if obj == nil ||
		obj.Type == proto.RuntimeRemoteObjectTypeUndefined ||
		obj.Subtype == proto.RuntimeRemoteObjectSubtypeNull {
		return nil, nil
	}
	el, err := page.ElementFromObject(obj)
	if err != nil {
		return nil, fmt.Errorf("wrap element: %w", err)
	}
	return &Element{el: el, page: page}, nil
}

// asElement unwraps the page-backed element behind el.
func asElement(el scroll.Element) (*Element, bool) {
	switch e := el.(type) {
	case *Element:
		return e, e != nil
	case *Box:
		if e == nil {
			return nil, false
		}
		return e.Element, e.Element != nil
	}
	return nil, false
}

func decodePoint(v gson.JSON) scroll.Point {
	return scroll.Point{X: v.Get("x").Num(), Y: v.Get("y").Num()}
}

func decodeExtent(v gson.JSON) scroll.Extent {
	return scroll.Extent{
		ScrollWidth:  v.Get("scrollWidth").Num(),
		ScrollHeight: v.Get("scrollHeight").Num(),
		ClientWidth:  v.Get("clientWidth").Num(),
		ClientHeight: v.Get("clientHeight").Num(),
		WindowWidth:  v.Get("windowWidth").Num(),
		WindowHeight: v.Get("windowHeight").Num(),
	}
}
