package middleware

import (
	"net/http"
	"time"

	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/infra/metrics"
	"github.com/diillson/course-platform-go/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares. O limiter é
// opcional; sem Redis configurado não há rate limiting.
func NewMiddleware(
	logger *zap.Logger,
	resolver *identity.Resolver,
	apiMetrics *metrics.APIMetrics,
	limiter *ratelimit.RedisLimiter,
	serviceName string,
) *Middleware {
	m := &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(resolver, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(logger),
		tracingMiddleware:  NewTracingMiddleware(logger, serviceName),
	}

	if apiMetrics != nil {
		m.metricsMiddleware = NewMetricsMiddleware(apiMetrics, logger)
	}

	if limiter != nil {
		m.rateLimitMiddleware = NewRateLimitMiddleware(limiter, apiMetrics, logger)
	}

	return m
}

// RequireAdmin exige token de administrador
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// Recovery recupera de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// Metrics registra métricas por requisição; no-op sem métricas configuradas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) { c.Next() }
}

// IPRateLimit limita requisições por IP; no-op sem limiter configurado
func (m *Middleware) IPRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.IPRateLimit()
	}
	return func(c *gin.Context) { c.Next() }
}

// LoginRateLimit aplica limite mais apertado em endpoints de credenciais
func (m *Middleware) LoginRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.RouteRateLimit(10, time.Minute)
	}
	return func(c *gin.Context) { c.Next() }
}

// IgnoreFavicon responde 204 para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger registra cada requisição concluída
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// SecurityHeaders adiciona cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS configura Cross-Origin Resource Sharing
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing inicia um span por requisição
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
