package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "yakidesk"

// Metrics набор Prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
	DBQueries     *prometheus.HistogramVec
	DBQueryErrors *prometheus.CounterVec
	DBOpenConns   prometheus.Gauge
	DBInUseConns  prometheus.Gauge
	DBIdleConns   prometheus.Gauge
	DBWaitCount   prometheus.Gauge

	BookingActions    *prometheus.CounterVec
	BookingOperations *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллекторы в указанном регистре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency in seconds by method and route.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_in_flight",
			Help:        "Number of HTTP requests currently being served.",
			ConstLabels: labels,
		}),
		DBQueries: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database call latency in seconds by operation.",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Number of failed database calls by operation.",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "open_connections",
			Help:        "Number of established connections both in use and idle.",
			ConstLabels: labels,
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: labels,
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}),
		BookingActions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "actions_total",
			Help:        "Booking requests by resolver action (create, create_and_cancel, reject).",
			ConstLabels: labels,
		}, []string{"action"}),
		BookingOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "store_operations_total",
			Help:        "Store writes issued for bookings by operation and final status.",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
	}
}

// RecordHTTPRequest записывает метрики завершенного HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery записывает длительность обращения к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueries.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.DBOpenConns.Set(float64(stats.OpenConnections))
	m.DBInUseConns.Set(float64(stats.InUse))
	m.DBIdleConns.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}

// RecordBookingAction учитывает решение резолвера
func (m *Metrics) RecordBookingAction(action string) {
	m.BookingActions.WithLabelValues(action).Inc()
}

// RecordBookingOperation учитывает итог записи в хранилище
func (m *Metrics) RecordBookingOperation(operation, status string) {
	m.BookingOperations.WithLabelValues(operation, status).Inc()
}
