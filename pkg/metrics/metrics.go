// Package metrics provides Prometheus collectors for HTTP, database and
// escrow business metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер всех коллекторов сервиса.
// Регистрирует коллекторы в default registry, который отдается promhttp.Handler().
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpen  *prometheus.GaugeVec
	dbPoolInUse *prometheus.GaugeVec
	dbPoolIdle  *prometheus.GaugeVec

	reservationsCreatedTotal *prometheus.CounterVec
	escrowVolumeUnits        *prometheus.CounterVec
	transitionsTotal         *prometheus.CounterVec
	disbursedUnits           *prometheus.CounterVec
}

// New создает и регистрирует все коллекторы
func New(serviceName string) *Metrics {
	return &Metrics{
		service: serviceName,
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"service", "operation"}),

		dbPoolOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of open connections in the pool",
		}, []string{"service"}),
		dbPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbPoolIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections in the pool",
		}, []string{"service"}),

		reservationsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_reservations_created_total",
			Help: "Total number of reservations created",
		}, []string{"service"}),
		escrowVolumeUnits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_volume_units_total",
			Help: "Total volume moved into escrow, in ledger units",
		}, []string{"service"}),
		transitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_transitions_total",
			Help: "Terminal reservation transitions by resulting status",
		}, []string{"service", "status"}),
		disbursedUnits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_disbursed_units_total",
			Help: "Disbursed amounts by leg (client_refund, salon_fee, app_commission)",
		}, []string{"service", "leg"}),
	}
}

// ObserveHTTPRequest фиксирует метрики одного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(service, method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует метрики одного запроса к БД
func (m *Metrics) ObserveDBQuery(service, operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) SetDBPoolStats(service string, open, inUse, idle int) {
	m.dbPoolOpen.WithLabelValues(service).Set(float64(open))
	m.dbPoolInUse.WithLabelValues(service).Set(float64(inUse))
	m.dbPoolIdle.WithLabelValues(service).Set(float64(idle))
}

// ReservationCreated фиксирует создание бронирования и объем эскроу
func (m *Metrics) ReservationCreated(amountUnits int64) {
	m.reservationsCreatedTotal.WithLabelValues(m.service).Inc()
	m.escrowVolumeUnits.WithLabelValues(m.service).Add(float64(amountUnits))
}

// TransitionApplied фиксирует терминальный переход бронирования
func (m *Metrics) TransitionApplied(status string) {
	m.transitionsTotal.WithLabelValues(m.service, status).Inc()
}

// Disbursed фиксирует выплату по одной из трех ног
func (m *Metrics) Disbursed(leg string, amountUnits int64) {
	if amountUnits <= 0 {
		return
	}
	m.disbursedUnits.WithLabelValues(m.service, leg).Add(float64(amountUnits))
}
