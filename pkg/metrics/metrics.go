package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	bookingDecisions *prometheus.CounterVec
	venueCandidates  prometheus.Histogram
	txRetries        prometheus.Counter
}

// New создает коллектор и регистрирует его в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллектор с указанным регистратором
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query latency.",
				ConstLabels: constLabels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		dbQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_query_errors_total",
				Help:        "Database query errors.",
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),
		dbConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections",
				Help:        "Database connection pool state.",
				ConstLabels: constLabels,
			},
			[]string{"state"},
		),
		bookingDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_decisions_total",
				Help:        "Booking workflow transitions by decision.",
				ConstLabels: constLabels,
			},
			[]string{"decision"},
		),
		venueCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "venue_search_candidates",
				Help:        "Number of venues returned by a search.",
				ConstLabels: constLabels,
				Buckets:     []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		txRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "db_tx_retries_total",
				Help:        "Serializable transactions retried after a serialization failure.",
				ConstLabels: constLabels,
			},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.bookingDecisions,
		m.venueCandidates,
		m.txRetries,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
}

// IncBookingDecision увеличивает счетчик переходов workflow (submitted, approved, rejected, expired, conflict)
func (m *Metrics) IncBookingDecision(decision string) {
	if m == nil {
		return
	}
	m.bookingDecisions.WithLabelValues(decision).Inc()
}

// ObserveVenueCandidates фиксирует размер выдачи поиска площадок
func (m *Metrics) ObserveVenueCandidates(count int) {
	if m == nil {
		return
	}
	m.venueCandidates.Observe(float64(count))
}

// IncTxRetry увеличивает счетчик повторов транзакций
func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}
