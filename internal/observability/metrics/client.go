package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/documinds/internal/core/domain"
)

// ClientMetrics tracks calls to the classification service and sorter outcomes.
type ClientMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge
	sortTotal       *prometheus.CounterVec
}

func NewClientMetrics(service string) *ClientMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "documinds",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total classification service calls by outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "documinds",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Classification service call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "documinds",
			Subsystem: "client",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight classification service calls.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	sortTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "documinds",
			Subsystem: "sort",
			Name:      "documents_total",
			Help:      "Total documents handled by the folder sorter by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(requestTotal, requestDuration, requestInFlight, sortTotal)

	return &ClientMetrics{
		registry:        registry,
		service:         service,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		sortTotal:       sortTotal,
	}
}

func (m *ClientMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ClientMetrics) StartRequest() {
	m.requestInFlight.Inc()
}

func (m *ClientMetrics) FinishRequest(operation string, duration time.Duration, err error) {
	m.requestInFlight.Dec()
	m.requestTotal.WithLabelValues(m.service, operation, outcome(err)).Inc()
	m.requestDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

func (m *ClientMetrics) ObserveSort(result domain.SortOutcome) {
	m.sortTotal.WithLabelValues(m.service, string(result)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsKind(err, domain.ErrNetwork):
		return "network_error"
	case domain.IsKind(err, domain.ErrProtocol):
		return "protocol_error"
	default:
		return "error"
	}
}
