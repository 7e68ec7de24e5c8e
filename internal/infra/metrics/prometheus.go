package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics gerencia métricas da plataforma de cursos
type APIMetrics struct {
	requestCounter   *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	activeRequests   *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	rateLimited      *prometheus.CounterVec
	cacheHitRatio    *prometheus.GaugeVec
	enrollmentsTotal prometheus.Counter
	ratingsTotal     prometheus.Counter
	loginsTotal      *prometheus.CounterVec
}

// NewAPIMetrics cria e registra métricas do prometheus
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_platform_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "course_platform_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "course_platform_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_platform_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		rateLimited: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_platform_rate_limited_requests_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path", "method", "limit_type"},
		),

		cacheHitRatio: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "course_platform_cache_hit_ratio",
				Help: "Cache hit ratio (0.0 to 1.0)",
			},
			[]string{"cache_type"},
		),

		enrollmentsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "course_platform_enrollments_total",
				Help: "Total number of enrollments created",
			},
		),

		ratingsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "course_platform_ratings_total",
				Help: "Total number of course ratings submitted",
			},
		),

		loginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_platform_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *APIMetrics) RequestCompleted(path, method, status string, duration time.Duration) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *APIMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// RateLimitExceeded registra quando um limite de taxa é excedido
func (m *APIMetrics) RateLimitExceeded(path, method, limitType string) {
	m.rateLimited.WithLabelValues(path, method, limitType).Inc()
}

// UpdateCacheHitRatio atualiza a taxa de acertos do cache
func (m *APIMetrics) UpdateCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}

// EnrollmentCreated registra uma nova matrícula
func (m *APIMetrics) EnrollmentCreated() {
	m.enrollmentsTotal.Inc()
}

// CourseRated registra uma nova avaliação de curso
func (m *APIMetrics) CourseRated() {
	m.ratingsTotal.Inc()
}

// LoginAttempt registra uma tentativa de login (result: success ou failure)
func (m *APIMetrics) LoginAttempt(result string) {
	m.loginsTotal.WithLabelValues(result).Inc()
}
