package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя, поэтому выключенные метрики не требуют проверок у вызывающего.
type Metrics struct {
	service string

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	bookingsCreated   *prometheus.CounterVec
	bookingsCancelled *prometheus.CounterVec
	paymentsRecorded  *prometheus.CounterVec
	bookingConflicts  *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		service: serviceName,

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}, []string{"service"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}, []string{"service"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bookings_created_total",
			Help:      "Number of bookings created",
		}, []string{"service"}),
		bookingsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bookings_cancelled_total",
			Help:      "Number of bookings cancelled",
		}, []string{"service", "reason"}),
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "payments_recorded_total",
			Help:      "Number of payment writes by resulting status",
		}, []string{"service", "status"}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "booking_conflicts_total",
			Help:      "Number of booking requests rejected because of overlapping dates",
		}, []string{"service"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "booking_events_published_total",
			Help:      "Number of booking events sent to the broker",
		}, []string{"service", "type", "status"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookingsCreated,
		m.bookingsCancelled,
		m.paymentsRecorded,
		m.bookingConflicts,
		m.eventsPublished,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(service, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(service, operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(service).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.service).Inc()
}

// IncBookingCancelled учитывает отмену бронирования (reason: user, payment)
func (m *Metrics) IncBookingCancelled(reason string) {
	if m == nil {
		return
	}
	m.bookingsCancelled.WithLabelValues(m.service, reason).Inc()
}

// IncPaymentRecorded учитывает запись платежа
func (m *Metrics) IncPaymentRecorded(status string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(m.service, status).Inc()
}

// IncBookingConflict учитывает отказ из-за пересечения дат
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(m.service).Inc()
}

// IncEventPublished учитывает отправку события в брокер
func (m *Metrics) IncEventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsPublished.WithLabelValues(m.service, eventType, status).Inc()
}

func sanitize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
