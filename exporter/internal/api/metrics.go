package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ncexporter/ncexporter/exporter/internal/convert"
)

const namespace = "nce"

// selfMetrics describes the exporter itself, served on /metrics.
type selfMetrics struct {
	registry *prometheus.Registry

	fetchFailures   prometheus.Counter
	parseErrors     prometheus.Counter
	ignoredValues   prometheus.Counter
	namesHash       prometheus.Gauge
	converted       prometheus.Gauge
	certExpiry      prometheus.Gauge
	fetchDuration   prometheus.Histogram
	convertDuration prometheus.Histogram
}

func newSelfMetrics(counter *RequestCounter) *selfMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_started_total",
		Help:      "Status requests received.",
	}, func() float64 { return float64(counter.Started()) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_completed_total",
		Help:      "Status requests answered with converted metrics.",
	}, func() float64 { return float64(counter.Completed()) })

	return &selfMetrics{
		registry: reg,
		fetchFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Status page fetches that failed or returned a non-200 status.",
		}),
		parseErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Status documents truncated by an XML syntax error.",
		}),
		ignoredValues: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ignored_values_total",
			Help:      "Non-numeric status values without a replacement entry.",
		}),
		namesHash: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "metric_names_hash",
			Help:      "Drift signature of the most recent conversion.",
		}),
		converted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "converted_metrics",
			Help:      "Metric lines produced by the most recent conversion.",
		}),
		certExpiry: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_cert_expiry_timestamp_seconds",
			Help:      "NotAfter of the status page's TLS leaf certificate.",
		}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching the status page.",
			Buckets:   prometheus.DefBuckets,
		}),
		convertDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "convert_duration_seconds",
			Help:      "Time spent converting the status page.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// observeConversion records the outcome of one conversion.
func (m *selfMetrics) observeConversion(res *convert.Result, took time.Duration) {
	m.convertDuration.Observe(took.Seconds())
	m.ignoredValues.Add(float64(res.Ignored))
	m.namesHash.Set(float64(res.Signature))
	m.converted.Set(float64(len(res.Records)))
	if res.Err != nil {
		m.parseErrors.Inc()
	}
}
