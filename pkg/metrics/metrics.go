// Package metrics собирает Prometheus-метрики сервиса в собственном реестре.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "salon_booking"

// Результаты операций для лейбла result
const (
	ResultCreated  = "created"
	ResultConflict = "conflict"
	ResultError    = "error"
	ResultOK       = "ok"
	ResultHit      = "hit"
	ResultMiss     = "miss"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBWaitDurationTotal prometheus.Gauge

	BookingsTotal    *prometheus.CounterVec
	SlotQueriesTotal *prometheus.CounterVec
	RateLimitedTotal *prometheus.CounterVec
	IdentityLookups  *prometheus.CounterVec
}

// New создает и регистрирует метрики. serviceName попадает в const label service.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "HTTP requests currently being served.",
			ConstLabels: labels,
		}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database call latency by operation and outcome.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "db_open_connections", Help: "Open connections.", ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "db_in_use_connections", Help: "Connections in use.", ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "db_idle_connections", Help: "Idle connections.", ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "db_wait_count", Help: "Connections waited for.", ConstLabels: labels,
		}),
		DBWaitDurationTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "db_wait_duration_seconds", Help: "Total time blocked waiting for a connection.", ConstLabels: labels,
		}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bookings_total",
			Help:        "Booking creation attempts by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		SlotQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "slot_queries_total",
			Help:        "Available slot queries by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		RateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rate_limited_total",
			Help:        "Requests rejected by the rate limiter.",
			ConstLabels: labels,
		}, []string{"route"}),
		IdentityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "identity_lookups_total",
			Help:        "Bearer token lookups by cache result.",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationTotal,
		m.BookingsTotal,
		m.SlotQueriesTotal,
		m.RateLimitedTotal,
		m.IdentityLookups,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncBooking учитывает результат создания бронирования. Безопасен для nil.
func (m *Metrics) IncBooking(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// IncSlotQuery учитывает запрос слотов. Безопасен для nil.
func (m *Metrics) IncSlotQuery(result string) {
	if m == nil {
		return
	}
	m.SlotQueriesTotal.WithLabelValues(result).Inc()
}

// IncRateLimited учитывает отклоненный запрос. Безопасен для nil.
func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(route).Inc()
}

// IncIdentityLookup учитывает попадание/промах кэша токенов. Безопасен для nil.
func (m *Metrics) IncIdentityLookup(result string) {
	if m == nil {
		return
	}
	m.IdentityLookups.WithLabelValues(result).Inc()
}
