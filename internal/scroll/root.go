package scroll

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/types"
)

// DetectRoot returns the box that scrolls the page. It prefers the host's
// native scrolling element; otherwise it nudges the document root down by one
// pixel and keeps the root if it moved, the body if it did not. The root's
// offset is restored either way.
func DetectRoot(doc Document) (Box, error) {
	if doc == nil {
		return nil, types.ErrNoScrollingBox
	}

	native, err := doc.ScrollingElement()
	if err != nil {
		return nil, fmt.Errorf("query scrolling element: %w", err)
	}
	if native != nil {
		log.Debug().Msg("Using native scrolling element")
		return native, nil
	}

	root, err := doc.DocumentElement()
	if err != nil {
		return nil, fmt.Errorf("query document element: %w", err)
	}
	if root != nil {
		moved, err := followsScroll(root)
		if err != nil {
			return nil, err
		}
		if moved {
			log.Debug().Msg("Document root scrolls the page")
			return root, nil
		}
	}

	body, err := doc.Body()
	if err != nil {
		return nil, fmt.Errorf("query body: %w", err)
	}
	if body == nil {
		return nil, types.ErrNoScrollingBox
	}
	log.Debug().Msg("Document body scrolls the page")
	return body, nil
}

// followsScroll reports whether box follows a one pixel vertical scroll.
func followsScroll(box Box) (bool, error) {
	start, err := box.ScrollOffset()
	if err != nil {
		return false, fmt.Errorf("read root scroll offset: %w", err)
	}
	if err := box.SetScrollOffset(Point{X: start.X, Y: start.Y + 1}); err != nil {
		return false, fmt.Errorf("test root scroll: %w", err)
	}
	end, err := box.ScrollOffset()
	if err != nil {
		return false, fmt.Errorf("read root scroll offset: %w", err)
	}
	if err := box.SetScrollOffset(start); err != nil {
		return false, fmt.Errorf("restore root scroll: %w", err)
	}
	return end.Y > start.Y, nil
}
