package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/assets"
	"github.com/Rorqualx/pisces/internal/config"
	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/types"
	"github.com/Rorqualx/pisces/pkg/version"
)

// closeTimeout bounds how long Close waits for the browser to exit.
const closeTimeout = 10 * time.Second

// Host owns a browser with one page open.
type Host struct {
	Browser *rod.Browser
	Page    *rod.Page
	cfg     *config.Config
}

// Open launches a browser and loads cfg.PageURL, or the embedded demo page
// when no URL is configured.
func Open(ctx context.Context, cfg *config.Config) (*Host, error) {
	b, err := Launch(cfg)
	if err != nil {
		return nil, err
	}

	page, err := newPage(b, cfg.Stealth)
	if err != nil {
		Close(b, closeTimeout)
		return nil, err
	}

	h := &Host{Browser: b, Page: page, cfg: cfg}
	if err := h.load(ctx); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// newPage opens a blank page, stealth-patched when requested.
func newPage(b *rod.Browser, withStealth bool) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if withStealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := setViewport(page, windowWidth, windowHeight); err != nil {
		log.Warn().Err(err).Msg("Failed to set viewport")
	}
	return page, nil
}

// load navigates to the configured page and waits for it to settle.
func (h *Host) load(ctx context.Context) error {
	page := h.Page.Context(ctx).Timeout(h.cfg.LoadTimeout)

	if h.cfg.PageURL == "" {
		data := assets.DefaultDemoPageData()
		data.Version = version.Full()
		data.Easings = easing.Names()
		html, err := assets.RenderDemoPage(data)
		if err != nil {
			return fmt.Errorf("render demo page: %w", err)
		}
		if err := page.SetDocumentContent(html); err != nil {
			return fmt.Errorf("%w: %w", types.ErrPageLoad, err)
		}
		log.Info().Msg("Loaded demo page")
		return nil
	}

	if err := page.Navigate(h.cfg.PageURL); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPageLoad, err)
	}
	log.Info().Str("url", h.cfg.PageURL).Msg("Page loaded")
	return nil
}

// ScrollingBox returns the box to animate: the element matching selector, or
// the document's root scrolling box when selector is empty. A selector waits
// up to the load timeout for its element to appear.
func (h *Host) ScrollingBox(ctx context.Context, selector string) (scroll.Box, error) {
	if selector == "" {
		return scroll.DetectRoot(NewDocument(h.Page))
	}

	el, err := h.Page.Context(ctx).Timeout(h.cfg.LoadTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("find scrolling box %q: %w", selector, err)
	}
	// Detach the element from the lookup timeout.
	return NewBox(el.Context(h.Page.GetContext()))
}

// Close closes the page and the browser.
func (h *Host) Close() {
	if h.Page != nil {
		if err := h.Page.Close(); err != nil {
			log.Debug().Err(err).Msg("Error closing page")
		}
	}
	Close(h.Browser, closeTimeout)
}

// setViewport sets the page viewport size.
func setViewport(page *rod.Page, width, height int) error {
	return page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
}
