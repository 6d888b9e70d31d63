// Package config provides application configuration management.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/easing"
)

// Configuration bounds.
const (
	minScrollDuration = 10 * time.Millisecond
	maxScrollDuration = time.Minute
	minFrameInterval  = 4 * time.Millisecond
	maxFrameInterval  = 250 * time.Millisecond
	maxLoadTimeout    = 5 * time.Minute
)

// Config holds all application configuration.
// Configuration is loaded from environment variables at startup.
type Config struct {
	// Logging
	LogLevel string

	// Browser host
	Headless    bool
	BrowserPath string
	Stealth     bool
	PageURL     string        // Page to open; empty serves the embedded demo page
	LoadTimeout time.Duration // Navigation and element lookup timeout

	// Scrolling
	ScrollingBox   string        // Selector of the scrolling box; empty uses the document root
	ScrollDuration time.Duration // Default animation duration
	ScrollEasing   string        // Default easing name, see easing.Names
	FrameInterval  time.Duration // Frame loop tick

	// Presets
	PresetsPath      string // Path to external presets.yaml override file
	PresetsHotReload bool   // Enable file watching for hot-reload of presets

	// Script to play after the page loads
	ScriptPath string

	// Metrics
	MetricsEnabled bool
	MetricsPort    int
}

// Load loads configuration from environment variables.
// Returns a Config with values from environment or sensible defaults.
func Load() *Config {
	return &Config{
		LogLevel: getEnvString("LOG_LEVEL", "info"),

		Headless:    getEnvBool("HEADLESS", true),
		BrowserPath: getEnvString("BROWSER_PATH", ""),
		Stealth:     getEnvBool("STEALTH", false),
		PageURL:     getEnvString("PAGE_URL", ""),
		LoadTimeout: getEnvDuration("LOAD_TIMEOUT", 30*time.Second),

		ScrollingBox:   getEnvString("SCROLLING_BOX", ""),
		ScrollDuration: getEnvDuration("SCROLL_DURATION", 600*time.Millisecond),
		ScrollEasing:   getEnvString("SCROLL_EASING", "default"),
		FrameInterval:  getEnvDuration("FRAME_INTERVAL", 16*time.Millisecond),

		PresetsPath:      getEnvString("PRESETS_PATH", ""),
		PresetsHotReload: getEnvBool("PRESETS_HOT_RELOAD", false),

		ScriptPath: getEnvString("SCRIPT_PATH", ""),

		// Metrics - disabled by default
		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsPort:    getEnvInt("METRICS_PORT", 9090),
	}
}

// Easing returns the configured default easing function.
// Call Validate first; unknown names fall back to easing.Default.
func (c *Config) Easing() easing.Func {
	if fn, ok := easing.Lookup(c.ScrollEasing); ok {
		return fn
	}
	return easing.Default
}

// Validate checks configuration values and logs warnings for invalid values.
// Invalid values are corrected to sensible defaults.
func (c *Config) Validate() {
	// Log level validation
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if level := strings.ToLower(c.LogLevel); validLogLevels[level] {
		c.LogLevel = level
	} else {
		log.Warn().Str("level", c.LogLevel).Msg("Invalid log level, using 'info'")
		c.LogLevel = "info"
	}

	c.BrowserPath = validatePath("BrowserPath", c.BrowserPath)

	if c.PageURL != "" && !strings.Contains(c.PageURL, "://") {
		log.Warn().
			Str("url", c.PageURL).
			Msg("PageURL missing scheme, assuming https://")
		c.PageURL = "https://" + c.PageURL
	}

	if c.LoadTimeout > maxLoadTimeout {
		log.Warn().
			Dur("timeout", c.LoadTimeout).
			Dur("max", maxLoadTimeout).
			Msg("Load timeout too high, capping to maximum")
		c.LoadTimeout = maxLoadTimeout
	}

	// Scroll duration validation (minimum 10ms, maximum 1 minute)
	if c.ScrollDuration < minScrollDuration {
		log.Warn().
			Dur("duration", c.ScrollDuration).
			Dur("min", minScrollDuration).
			Msg("Scroll duration too short, using minimum")
		c.ScrollDuration = minScrollDuration
	} else if c.ScrollDuration > maxScrollDuration {
		log.Warn().
			Dur("duration", c.ScrollDuration).
			Dur("max", maxScrollDuration).
			Msg("Scroll duration too long, using maximum")
		c.ScrollDuration = maxScrollDuration
	}

	if _, ok := easing.Lookup(c.ScrollEasing); !ok {
		log.Warn().
			Str("easing", c.ScrollEasing).
			Strs("known", easing.Names()).
			Msg("Unknown easing, using 'default'")
		c.ScrollEasing = "default"
	}

	// Frame interval validation (minimum 4ms, maximum 250ms)
	if c.FrameInterval < minFrameInterval {
		log.Warn().
			Dur("interval", c.FrameInterval).
			Dur("min", minFrameInterval).
			Msg("Frame interval too short, using minimum")
		c.FrameInterval = minFrameInterval
	} else if c.FrameInterval > maxFrameInterval {
		log.Warn().
			Dur("interval", c.FrameInterval).
			Dur("max", maxFrameInterval).
			Msg("Frame interval too long, using maximum")
		c.FrameInterval = maxFrameInterval
	}
	if c.FrameInterval >= c.ScrollDuration {
		log.Warn().
			Dur("interval", c.FrameInterval).
			Dur("duration", c.ScrollDuration).
			Msg("FRAME_INTERVAL is not shorter than SCROLL_DURATION - animations will jump in a single frame")
	}

	// Presets path validation
	c.PresetsPath = validatePath("PresetsPath", c.PresetsPath)
	if c.PresetsHotReload && c.PresetsPath != "" {
		if _, err := os.Stat(c.PresetsPath); os.IsNotExist(err) {
			log.Warn().
				Str("path", c.PresetsPath).
				Msg("PresetsPath does not exist - hot-reload will watch for file creation")
		}
	}
	if c.PresetsHotReload && c.PresetsPath == "" {
		log.Warn().Msg("PRESETS_HOT_RELOAD enabled but PRESETS_PATH not set - hot-reload disabled")
		c.PresetsHotReload = false
	}

	c.ScriptPath = validatePath("ScriptPath", c.ScriptPath)

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		log.Warn().Int("port", c.MetricsPort).Msg("Invalid metrics port, using default 9090")
		c.MetricsPort = 9090
	}
}

// validatePath rejects path traversal and warns about relative paths.
func validatePath(name, path string) string {
	if path == "" {
		return ""
	}
	if strings.Contains(path, "..") {
		log.Error().
			Str("path", path).
			Msg(name + " contains path traversal sequence (..), ignoring")
		return ""
	}
	if !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "C:") && !strings.HasPrefix(path, "c:") {
		log.Warn().
			Str("path", path).
			Msg(name + " should be an absolute path")
	}
	return path
}

// Helper functions for environment variable parsing

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.ParseInt(value, 10, 32)
		if err == nil {
			return int(intValue)
		}
		log.Warn().
			Str("key", key).
			Str("value", value).
			Err(err).
			Int("default", defaultValue).
			Msg("Invalid integer in environment variable, using default")
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
		log.Warn().
			Str("key", key).
			Str("value", value).
			Err(err).
			Bool("default", defaultValue).
			Msg("Invalid boolean in environment variable, using default")
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err == nil {
			// Reject negative or zero durations
			if duration > 0 {
				return duration
			}
			log.Warn().
				Str("key", key).
				Str("value", value).
				Dur("default", defaultValue).
				Msg("Duration must be positive, using default")
			return defaultValue
		}
		log.Warn().
			Str("key", key).
			Str("value", value).
			Err(err).
			Dur("default", defaultValue).
			Msg("Invalid duration in environment variable, using default")
	}
	return defaultValue
}
