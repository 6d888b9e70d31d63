// Package browser hosts scroll animations in a real browser page driven over
// the Chrome DevTools Protocol.
//
// The scrolling box, its elements and the document are wrapped as
// scroll.Box, scroll.Element and scroll.Document. Every read and write is
// one CDP round trip evaluated against the live DOM.
package browser

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/config"
	"github.com/Rorqualx/pisces/internal/types"
)

// Window size of launched browsers.
const (
	windowWidth  = 1280
	windowHeight = 900
)

// newLauncher builds the Chrome launcher for cfg.
// Each launch needs a fresh launcher; they can only be used once.
func newLauncher(cfg *config.Config) *launcher.Launcher {
	l := launcher.New()

	if cfg.BrowserPath != "" {
		l = l.Bin(cfg.BrowserPath)
	}

	// Rod enables headless by default; a visible window needs it turned off.
	if cfg.Headless {
		l = l.Set("headless", "new")
	} else {
		l = l.Headless(false)
	}

	// Container flags
	l = l.Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage")

	l = l.Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-infobars").
		Set("disable-search-engine-choice-screen").
		Set("window-size", fmt.Sprintf("%d,%d", windowWidth, windowHeight))

	l = l.Set("disable-background-networking").
		Set("disable-default-apps").
		Set("disable-extensions").
		Set("disable-sync").
		Set("mute-audio")

	// Keep frame timers running while the window is hidden.
	l = l.Set("disable-renderer-backgrounding").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows")

	if isARM() {
		l = l.Set("disable-gpu-compositing")
		log.Debug().Msg("ARM detected: using software compositing")
	}

	return l
}

// Launch starts a browser and connects to it.
func Launch(cfg *config.Config) (*rod.Browser, error) {
	log.Debug().
		Bool("headless", cfg.Headless).
		Str("bin", cfg.BrowserPath).
		Msg("Launching browser")

	url, err := newLauncher(cfg).Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %w", types.ErrBrowserLaunch, err)
	}

	log.Debug().Str("url", url).Msg("Browser connected")
	return browser, nil
}

// Close closes browser, giving up after timeout.
// Returns true if the browser closed in time.
func Close(browser *rod.Browser, timeout time.Duration) bool {
	closeDone := make(chan struct{})
	closeStarted := time.Now()

	go func() {
		defer close(closeDone)
		if err := browser.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing browser")
		}
	}()

	select {
	case <-closeDone:
		log.Debug().
			Dur("duration", time.Since(closeStarted)).
			Msg("Browser closed successfully")
		return true
	case <-time.After(timeout):
		log.Warn().
			Dur("elapsed", time.Since(closeStarted)).
			Msg("Browser close timed out")
		return false
	}
}

// isARM returns true if running on ARM architecture.
func isARM() bool {
	arch := runtime.GOARCH
	return arch == "arm" || arch == "arm64"
}
