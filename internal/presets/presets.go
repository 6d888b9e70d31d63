// Package presets provides named scroll animation presets.
package presets

import (
	"embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/types"
)

//go:embed presets.yaml
var defaultPresetsFS embed.FS

// Preset bundles the animation options applied together under one name.
// A zero Duration or empty Easing leaves the controller's setting alone.
type Preset struct {
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`
}

// Options converts the preset into controller options.
func (p Preset) Options() ([]scroll.Option, error) {
	var opts []scroll.Option
	if p.Duration > 0 {
		opts = append(opts, scroll.WithDuration(p.Duration))
	}
	if p.Easing != "" {
		fn, ok := easing.Lookup(p.Easing)
		if !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownEasing, p.Easing)
		}
		opts = append(opts, scroll.WithEasing(fn))
	}
	return opts, nil
}

// Presets is the parsed presets file.
type Presets struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Lookup returns the named preset.
func (s *Presets) Lookup(name string) (Preset, bool) {
	p, ok := s.Presets[name]
	return p, ok
}

// Names returns the preset names, sorted.
func (s *Presets) Names() []string {
	names := make([]string, 0, len(s.Presets))
	for name := range s.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every preset is usable.
func (s *Presets) Validate() error {
	if len(s.Presets) == 0 {
		return fmt.Errorf("presets file must define at least one preset")
	}
	for name, p := range s.Presets {
		if p.Duration < 0 {
			return fmt.Errorf("preset %q: negative duration %v", name, p.Duration)
		}
		if p.Easing != "" {
			if _, ok := easing.Lookup(p.Easing); !ok {
				return fmt.Errorf("preset %q: %w: %q", name, types.ErrUnknownEasing, p.Easing)
			}
		}
	}
	return nil
}

var (
	instance *Presets
	once     sync.Once
	loadErr  error
)

// Get returns the singleton embedded Presets instance.
func Get() *Presets {
	once.Do(func() {
		instance, loadErr = load()
		if loadErr != nil {
			log.Error().Err(loadErr).Msg("Failed to load presets, using defaults")
			instance = defaultPresets()
		}
	})
	return instance
}

// load reads presets from the embedded YAML file.
func load() (*Presets, error) {
	data, err := defaultPresetsFS.ReadFile("presets.yaml")
	if err != nil {
		return nil, err
	}

	s, err := parseAndValidate(data)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("presets", len(s.Presets)).
		Msg("Presets loaded")

	return s, nil
}

// defaultPresets returns the hardcoded fallback.
func defaultPresets() *Presets {
	return &Presets{
		Presets: map[string]Preset{
			"default": {Duration: scroll.DefaultDuration, Easing: "default"},
		},
	}
}

// parseAndValidate parses YAML data and validates the presets.
func parseAndValidate(data []byte) (*Presets, error) {
	var s Presets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
