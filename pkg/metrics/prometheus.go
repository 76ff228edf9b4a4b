package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal     *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	datasetSize    prometheus.Gauge
	assetLoads     *prometheus.CounterVec
	activeSessions prometheus.Gauge
	renders        prometheus.Counter
	renderPoints   prometheus.Histogram
}

// New creates a new Prometheus metrics recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyclevis_fetch_total",
				Help: "Total number of RSI dataset fetches by result",
			},
			[]string{"result"},
		),
		fetchDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cyclevis_fetch_duration_seconds",
				Help:    "Duration of RSI dataset fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		datasetSize: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "cyclevis_dataset_records",
				Help: "Number of records in the last fetched RSI dataset",
			},
		),
		assetLoads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyclevis_marker_asset_loads_total",
				Help: "Marker image loads by symbol and result",
			},
			[]string{"symbol", "result"},
		),
		activeSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "cyclevis_active_sessions",
				Help: "Number of mounted dashboard sessions",
			},
		),
		renders: f.NewCounter(
			prometheus.CounterOpts{
				Name: "cyclevis_renders_total",
				Help: "Total number of chart configurations rendered",
			},
		),
		renderPoints: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cyclevis_render_points",
				Help:    "Number of points per rendered chart",
				Buckets: []float64{0, 1, 10, 50, 100, 200, 500},
			},
		),
	}
}

// RecordFetch records one upstream fetch and its latency in seconds.
func (r *Recorder) RecordFetch(result string, seconds float64) {
	r.fetchTotal.WithLabelValues(result).Inc()
	r.fetchDuration.Observe(seconds)
}

// RecordDatasetSize records the size of the last successful fetch.
func (r *Recorder) RecordDatasetSize(n int) {
	r.datasetSize.Set(float64(n))
}

// RecordAssetLoad records a marker image load attempt.
func (r *Recorder) RecordAssetLoad(symbol, result string) {
	r.assetLoads.WithLabelValues(symbol, result).Inc()
}

func (r *Recorder) SessionOpened() { r.activeSessions.Inc() }

func (r *Recorder) SessionClosed() { r.activeSessions.Dec() }

// RecordRender records a rendered chart with the given number of points.
func (r *Recorder) RecordRender(points int) {
	r.renders.Inc()
	r.renderPoints.Observe(float64(points))
}
