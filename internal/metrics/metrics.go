package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	comparisons        prometheus.Counter
	quoteResponses     *prometheus.CounterVec
	duplicateResponses prometheus.Counter
	recomputations     *prometheus.CounterVec
}

func New(prefix string, registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		gatherer: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		comparisons: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_quote_comparisons_total",
			Help: "Total number of quote comparisons computed",
		}),
		quoteResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_quote_responses_total",
			Help: "Total number of accepted quote responses",
		}, []string{"channel"}),
		duplicateResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_quote_responses_duplicate_total",
			Help: "Total number of rejected duplicate quote responses",
		}),
		recomputations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_supplier_score_recomputations_total",
			Help: "Total number of supplier performance recomputations",
		}, []string{"trigger"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

func (m *Metrics) ComparisonComputed() {
	if m == nil {
		return
	}
	m.comparisons.Inc()
}

func (m *Metrics) QuoteResponseAccepted(channel string) {
	if m == nil {
		return
	}
	m.quoteResponses.WithLabelValues(channel).Inc()
}

func (m *Metrics) DuplicateResponseRejected() {
	if m == nil {
		return
	}
	m.duplicateResponses.Inc()
}

func (m *Metrics) PerformanceRecomputed(trigger string) {
	if m == nil {
		return
	}
	m.recomputations.WithLabelValues(trigger).Inc()
}
