// Package metrics provides Prometheus metrics for monitoring scroll animations.
package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Animation outcomes.
const (
	OutcomeCompleted  = "completed"
	OutcomeCancelled  = "cancelled"
	OutcomeSuperseded = "superseded"
)

var (
	// AnimationsStarted counts animations by the operation that started them.
	AnimationsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pisces_animations_started_total",
			Help: "Total number of scroll animations started",
		},
		[]string{"op"},
	)

	// AnimationsFinished counts animations by outcome.
	AnimationsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pisces_animations_finished_total",
			Help: "Total number of scroll animations finished by outcome",
		},
		[]string{"outcome"},
	)

	// AnimationDuration tracks how long completed animations ran.
	AnimationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pisces_animation_duration_seconds",
			Help:    "Wall-clock duration of completed scroll animations",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6.4s
		},
	)

	// FramesRendered counts animation frames written to a scrolling box.
	FramesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pisces_frames_rendered_total",
			Help: "Total number of animation frames written",
		},
	)

	// FrameWriteErrors counts frames the host failed to apply.
	FrameWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pisces_frame_write_errors_total",
			Help: "Total number of scroll writes rejected by the host",
		},
	)

	// InvalidTargets counts rejected scroll targets by reason.
	InvalidTargets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pisces_invalid_targets_total",
			Help: "Total number of rejected scroll targets by reason",
		},
		[]string{"reason"},
	)

	// PresetReloads counts preset file reloads by result.
	PresetReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pisces_preset_reloads_total",
			Help: "Total number of preset file reloads by result",
		},
		[]string{"result"},
	)

	// GoroutineCount shows current goroutine count.
	GoroutineCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pisces_goroutines",
			Help: "Current number of goroutines",
		},
	)

	// BuildInfo provides build information as labels.
	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pisces_build_info",
			Help: "Build information",
		},
		[]string{"version", "go_version"},
	)
)

func init() {
	prometheus.MustRegister(
		AnimationsStarted,
		AnimationsFinished,
		AnimationDuration,
		FramesRendered,
		FrameWriteErrors,
		InvalidTargets,
		PresetReloads,
		GoroutineCount,
		BuildInfo,
	)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, goVersion string) {
	BuildInfo.WithLabelValues(version, goVersion).Set(1)
}

// StartRuntimeCollector periodically updates runtime gauges until stopCh is closed.
func StartRuntimeCollector(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		case <-stopCh:
			return
		}
	}
}

// RecordAnimationStarted records an animation started by op.
func RecordAnimationStarted(op string) {
	AnimationsStarted.WithLabelValues(op).Inc()
}

// RecordAnimationFinished records an animation outcome. elapsed is only
// observed for completed animations.
func RecordAnimationFinished(outcome string, elapsed time.Duration) {
	AnimationsFinished.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCompleted {
		AnimationDuration.Observe(elapsed.Seconds())
	}
}

// RecordFrame records one written frame.
func RecordFrame(err error) {
	FramesRendered.Inc()
	if err != nil {
		FrameWriteErrors.Inc()
	}
}

// RecordInvalidTarget records a rejected target.
func RecordInvalidTarget(reason string) {
	InvalidTargets.WithLabelValues(reason).Inc()
}

// RecordPresetReload records a preset reload result ("success" or "failure").
func RecordPresetReload(result string) {
	PresetReloads.WithLabelValues(result).Inc()
}
