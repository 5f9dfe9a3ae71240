package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "unemploy"

// Metrics holds the run-scoped Prometheus collectors. Each run owns its own
// registry so nothing leaks into the global default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	StepDuration   *prometheus.HistogramVec
	RecordsLoaded  prometheus.Gauge
	RecordsDropped prometheus.Gauge
	ChartsRendered *prometheus.CounterVec
}

// NewMetrics creates and registers the run metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time spent in each pipeline step.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"step"}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "records_loaded",
			Help:      "Records kept after cleaning.",
		}),
		RecordsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "records_dropped",
			Help:      "Records removed because a field was missing.",
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "charts_rendered_total",
			Help:      "Charts handed to the renderer, by kind.",
		}, []string{"kind"}),
	}

	m.Registry.MustRegister(m.StepDuration, m.RecordsLoaded, m.RecordsDropped, m.ChartsRendered)
	return m
}

// ObserveStep records the duration of a pipeline step
func (m *Metrics) ObserveStep(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.StepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// SetRecords records the outcome of loading and cleaning
func (m *Metrics) SetRecords(loaded, dropped int) {
	if m == nil {
		return
	}
	m.RecordsLoaded.Set(float64(loaded))
	m.RecordsDropped.Set(float64(dropped))
}

// ChartRendered counts one chart of the given kind (line, bar, box)
func (m *Metrics) ChartRendered(kind string) {
	if m == nil {
		return
	}
	m.ChartsRendered.WithLabelValues(kind).Inc()
}

// WriteTextfile writes the registry in the node-exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
