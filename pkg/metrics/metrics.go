// Package metrics records scrambler runs as Prometheus metrics.
//
// [Metrics] implements [observability.FrameHooks] on a private registry. A run
// can be exported with [Metrics.WriteTextfile] in the format read by the
// node_exporter textfile collector, so no HTTP endpoint is needed.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/observability"
)

const namespace = "scrambler"

// Metrics collects frame, reshuffle and capture error counts.
type Metrics struct {
	registry *prometheus.Registry

	FramesTotal        prometheus.Counter
	FrameDuration      prometheus.Histogram
	ReshufflesTotal    *prometheus.CounterVec
	Blocks             prometheus.Gauge
	CaptureErrorsTotal *prometheus.CounterVec
}

var _ observability.FrameHooks = (*Metrics)(nil)

// New creates the metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		FramesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Total number of frames scrambled and displayed",
		}),
		FrameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time to scramble and display one frame",
			Buckets:   []float64{.001, .0025, .005, .01, .02, .033, .05, .1, .25},
		}),
		ReshufflesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reshuffles_total",
			Help:      "Total number of permutation regenerations, by reason",
		}, []string{"reason"}),
		Blocks: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks",
			Help:      "Number of blocks in the current grid",
		}),
		CaptureErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capture_errors_total",
			Help:      "Capture failures, by error code",
		}, []string{"code"}),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OnFrame(_ context.Context, _ uint64, d time.Duration) {
	m.FramesTotal.Inc()
	m.FrameDuration.Observe(d.Seconds())
}

func (m *Metrics) OnReshuffle(_ context.Context, reason string, blocks int) {
	m.ReshufflesTotal.WithLabelValues(reason).Inc()
	m.Blocks.Set(float64(blocks))
}

func (m *Metrics) OnCaptureError(_ context.Context, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	m.CaptureErrorsTotal.WithLabelValues(string(code)).Inc()
}

// WriteTextfile writes the current values to path in the Prometheus text
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
