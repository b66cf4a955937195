// Package metrics exposes prometheus collectors for the ledger and its HTTP layer.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitledger"

// Metrics groups the collectors registered for one process.
type Metrics struct {
	gatherer prometheus.Gatherer

	usersCreated    prometheus.Counter
	usersRemoved    prometheus.Counter
	expensesCreated *prometheus.CounterVec
	expenseAmount   prometheus.Histogram
	rejections      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		usersCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Users registered.",
		}),
		usersRemoved: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_removed_total",
			Help:      "Users removed from the directory.",
		}),
		expensesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Expenses appended to the ledger by split method.",
		}, []string{"method"}),
		expenseAmount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expense_amount",
			Help:      "Amounts of recorded expenses.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Operations rejected by validation, by operation and error kind.",
		}, []string{"operation", "kind"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) UserCreated() {
	if m == nil {
		return
	}
	m.usersCreated.Inc()
}

func (m *Metrics) UserRemoved() {
	if m == nil {
		return
	}
	m.usersRemoved.Inc()
}

// ExpenseCreated records an appended expense of the given split method and amount.
func (m *Metrics) ExpenseCreated(method string, amount float64) {
	if m == nil {
		return
	}
	m.expensesCreated.WithLabelValues(method).Inc()
	m.expenseAmount.Observe(amount)
}

// Rejected counts an operation refused with an error of the given kind.
func (m *Metrics) Rejected(operation, kind string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, kind).Inc()
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
