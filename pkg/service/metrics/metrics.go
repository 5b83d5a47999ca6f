package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "riskdss"

// Metrics owns a private Prometheus registry with the dashboard collectors.
// It implements usecase.TransformObserver.
type Metrics struct {
	registry *prometheus.Registry

	transforms       *prometheus.CounterVec
	transformErrors  *prometheus.CounterVec
	transformLatency *prometheus.HistogramVec
	datasetRecords   prometheus.Gauge
	httpRequests     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "total",
			Help:      "number of dataset transforms, by view",
		}, []string{"view"}),
		transformErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "errors_total",
			Help:      "number of failed dataset transforms, by view",
		}, []string{"view"}),
		transformLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "duration_seconds",
			Help:      "time spent transforming the dataset, by view",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"view"}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "records",
			Help:      "number of risk records in the session dataset",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.transforms,
		m.transformErrors,
		m.transformLatency,
		m.datasetRecords,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveTransform records one dashboard transform
func (m *Metrics) ObserveTransform(view string, records int, elapsed time.Duration, err error) {
	m.transforms.WithLabelValues(view).Inc()
	m.transformLatency.WithLabelValues(view).Observe(elapsed.Seconds())
	if err != nil {
		m.transformErrors.WithLabelValues(view).Inc()
	}
	m.datasetRecords.Set(float64(records))
}

// SetDatasetRecords records the size of the loaded dataset
func (m *Metrics) SetDatasetRecords(n int) {
	m.datasetRecords.Set(float64(n))
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
