package middleware

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/infra/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware coleta métricas de requisições HTTP
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: apiMetrics,
		logger:  logger,
	}
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		m.metrics.RequestCompleted(path, method, status, duration)

		if c.Writer.Status() >= 400 {
			errorType := "client_error"
			if c.Writer.Status() >= 500 {
				errorType = "server_error"
			}
			m.metrics.RequestError(path, method, errorType)
		}
	}
}

// MetricsHandler expõe o endpoint de métricas do Prometheus
type MetricsHandler struct {
	Metrics *metrics.APIMetrics
	Logger  *zap.Logger
}

// NewMetricsHandler cria um novo handler de métricas
func NewMetricsHandler(apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		Metrics: apiMetrics,
		Logger:  logger,
	}
}

// Handler retorna o handler HTTP do Prometheus embrulhado para o gin
func (h *MetricsHandler) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
