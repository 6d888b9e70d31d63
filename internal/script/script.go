// Package script plays scroll tours: YAML lists of scroll steps run one after
// another against a scroll.Controller.
//
// A script looks like
//
//	name: tour
//	repeat: 2
//	steps:
//	  - selector: "li:nth-child(5)"
//	    preset: slow
//	  - position: {y: "+200"}
//	    easing: Bounce.Out
//	    duration: 900ms
//	  - edge: top
//	    wait: 500ms
//	  - wait: 1s
//
// Every step names at most one target. A step with no target only waits.
package script

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/types"
)

// Step is one scroll instruction.
type Step struct {
	Selector string           `yaml:"selector"`
	Position *scroll.Position `yaml:"position"`
	Edge     string           `yaml:"edge"`

	// Animation overrides, applied preset first.
	Preset   string        `yaml:"preset"`
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`

	// Wait pauses after the step completes.
	Wait time.Duration `yaml:"wait"`
}

// HasTarget reports whether the step scrolls.
func (s Step) HasTarget() bool {
	return s.Selector != "" || s.Position != nil || s.Edge != ""
}

// Target returns the value passed to Controller.ScrollTo.
func (s Step) Target() any {
	switch {
	case s.Selector != "":
		return s.Selector
	case s.Position != nil:
		return *s.Position
	default:
		edge, _ := scroll.ParseEdge(s.Edge)
		return edge
	}
}

// String describes the step for logs.
func (s Step) String() string {
	switch {
	case s.Selector != "":
		return "selector " + s.Selector
	case s.Position != nil:
		return fmt.Sprintf("position {x: %s, y: %s}", s.Position.X, s.Position.Y)
	case s.Edge != "":
		return "edge " + s.Edge
	default:
		return "wait " + s.Wait.String()
	}
}

// Script is a named sequence of steps.
type Script struct {
	Name   string `yaml:"name"`
	Repeat int    `yaml:"repeat"`
	Steps  []Step `yaml:"steps"`
}

// Validate checks that every step is well formed.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", types.ErrInvalidScript)
	}
	if s.Repeat < 0 {
		return fmt.Errorf("%w: negative repeat %d", types.ErrInvalidScript, s.Repeat)
	}
	for i, step := range s.Steps {
		targets := 0
		if step.Selector != "" {
			targets++
		}
		if step.Position != nil {
			targets++
		}
		if step.Edge != "" {
			targets++
			if _, ok := scroll.ParseEdge(step.Edge); !ok {
				return fmt.Errorf("%w: step %d: unknown edge %q", types.ErrInvalidScript, i+1, step.Edge)
			}
		}
		if targets > 1 {
			return fmt.Errorf("%w: step %d: more than one target", types.ErrInvalidScript, i+1)
		}
		if targets == 0 && step.Wait <= 0 {
			return fmt.Errorf("%w: step %d: no target and no wait", types.ErrInvalidScript, i+1)
		}
		if step.Duration < 0 || step.Wait < 0 {
			return fmt.Errorf("%w: step %d: negative duration", types.ErrInvalidScript, i+1)
		}
		if step.Easing != "" {
			if _, ok := easing.Lookup(step.Easing); !ok {
				return fmt.Errorf("%w: step %d: %w: %q", types.ErrInvalidScript, i+1, types.ErrUnknownEasing, step.Easing)
			}
		}
	}
	return nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}
