package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Rorqualx/pisces/internal/scroll"
)

// listBox is a viewport scrolled one line per unit. Only the vertical axis
// scrolls. Fractional offsets are kept so easing stays smooth across frames;
// the viewport shows the nearest line.
type listBox struct {
	vp    *viewport.Model
	y     float64
	items []*lineItem
}

// lineItem is one line of the list.
type lineItem struct {
	box   *listBox
	index int
	label string
}

func newListBox(vp *viewport.Model, labels []string) *listBox {
	b := &listBox{vp: vp}
	for i, label := range labels {
		b.items = append(b.items, &lineItem{box: b, index: i, label: label})
	}
	return b
}

func (it *lineItem) Offset() (scroll.Point, error) {
	return scroll.Point{Y: float64(it.index)}, nil
}

func (it *lineItem) OffsetParent() (scroll.Element, error) {
	return it.box, nil
}

func (b *listBox) Offset() (scroll.Point, error)         { return scroll.Point{}, nil }
func (b *listBox) OffsetParent() (scroll.Element, error) { return nil, nil }
func (b *listBox) IsBody() bool                          { return false }

func (b *listBox) ScrollOffset() (scroll.Point, error) {
	return scroll.Point{Y: b.y}, nil
}

// SetScrollOffset clamps like a browser does and moves the viewport.
func (b *listBox) SetScrollOffset(p scroll.Point) error {
	limit := b.limit()
	b.y = min(max(p.Y, 0), limit)
	b.vp.SetYOffset(int(math.Round(b.y)))
	return nil
}

func (b *listBox) Extent() (scroll.Extent, error) {
	total := float64(b.vp.TotalLineCount())
	return scroll.Extent{
		ScrollWidth:  float64(b.vp.Width),
		ScrollHeight: total,
		ClientWidth:  float64(b.vp.Width),
		ClientHeight: float64(b.vp.Height),
	}, nil
}

func (b *listBox) limit() float64 {
	return max(float64(b.vp.TotalLineCount()-b.vp.Height), 0)
}

func (b *listBox) Is(el scroll.Element) (bool, error) {
	other, ok := el.(*listBox)
	return ok && other == b, nil
}

func (b *listBox) Contains(el scroll.Element) (bool, error) {
	switch e := el.(type) {
	case *listBox:
		return e == b, nil
	case *lineItem:
		return e.box == b, nil
	}
	return false, nil
}

// Query matches "#N" (the 1-based item number) or, failing that, the first
// item whose label contains selector, ignoring case.
func (b *listBox) Query(selector string) (scroll.Element, error) {
	if n, ok := strings.CutPrefix(selector, "#"); ok {
		if i, err := strconv.Atoi(n); err == nil {
			if i < 1 || i > len(b.items) {
				return nil, nil
			}
			return b.items[i-1], nil
		}
	}
	needle := strings.ToLower(selector)
	for _, it := range b.items {
		if strings.Contains(strings.ToLower(it.label), needle) {
			return it, nil
		}
	}
	return nil, nil
}

// item returns the 0-based item, or nil when out of range.
func (b *listBox) item(i int) *lineItem {
	if i < 0 || i >= len(b.items) {
		return nil
	}
	return b.items[i]
}

// current is the index of the item at the top of the viewport.
func (b *listBox) current() int {
	return int(math.Round(b.y))
}
