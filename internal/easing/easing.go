// Package easing provides easing curves for scroll animations.
//
// An easing function maps the elapsed fraction of an animation's duration to
// a progress fraction in normally [0, 1]; outputs may leave [0, 1] to express
// overshoot (Back, Elastic). Curves are registered under their tween.js names
// ("Cubic.InOut") and come from github.com/fogleman/ease, except Default and
// the Elastic family.
package easing

import (
	"math"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Func maps elapsed fraction t to progress.
type Func func(t float64) float64

// Default is the circular ease-out curve f(t) = sqrt(1 - (1-t)^2).
// t is clamped to [0, 1].
func Default(t float64) float64 {
	t = min(max(t, 0), 1) - 1
	return math.Sqrt(1 - t*t)
}

// Elastic curves keep the tween.js 0.4 period, which ease does not use.
func elasticIn(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return -math.Pow(2, 10*(t-1)) * math.Sin((t-1.1)*5*math.Pi)
}

func elasticOut(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return math.Pow(2, -10*t)*math.Sin((t-0.1)*5*math.Pi) + 1
}

func elasticInOut(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	t *= 2
	if t < 1 {
		return -0.5 * math.Pow(2, 10*(t-1)) * math.Sin((t-1.1)*5*math.Pi)
	}
	return 0.5*math.Pow(2, -10*(t-1))*math.Sin((t-1.1)*5*math.Pi) + 1
}

// registry maps lower-cased "Family.Variant" names to curves.
var registry = map[string]Func{
	"default":           Default,
	"linear.none":       ease.Linear,
	"quadratic.in":      ease.InQuad,
	"quadratic.out":     ease.OutQuad,
	"quadratic.inout":   ease.InOutQuad,
	"cubic.in":          ease.InCubic,
	"cubic.out":         ease.OutCubic,
	"cubic.inout":       ease.InOutCubic,
	"quartic.in":        ease.InQuart,
	"quartic.out":       ease.OutQuart,
	"quartic.inout":     ease.InOutQuart,
	"quintic.in":        ease.InQuint,
	"quintic.out":       ease.OutQuint,
	"quintic.inout":     ease.InOutQuint,
	"sinusoidal.in":     ease.InSine,
	"sinusoidal.out":    ease.OutSine,
	"sinusoidal.inout":  ease.InOutSine,
	"exponential.in":    ease.InExpo,
	"exponential.out":   ease.OutExpo,
	"exponential.inout": ease.InOutExpo,
	"circular.in":       ease.InCirc,
	"circular.out":      Default,
	"circular.inout":    ease.InOutCirc,
	"elastic.in":        elasticIn,
	"elastic.out":       elasticOut,
	"elastic.inout":     elasticInOut,
	"back.in":           ease.InBack,
	"back.out":          ease.OutBack,
	"back.inout":        ease.InOutBack,
	"bounce.in":         ease.InBounce,
	"bounce.out":        ease.OutBounce,
	"bounce.inout":      ease.InOutBounce,
}

// Lookup returns the curve registered under name. Names are matched
// case-insensitively and may carry a "Tween.Easing." prefix, so both
// "Cubic.InOut" and "Tween.Easing.Cubic.InOut" resolve. "linear" is accepted
// as a shorthand for "Linear.None".
func Lookup(name string) (Func, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "tween.easing.")
	if key == "" {
		return nil, false
	}
	if key == "linear" {
		key = "linear.none"
	}
	fn, ok := registry[key]
	return fn, ok
}

// Names returns the registered curve names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
