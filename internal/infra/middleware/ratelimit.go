package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diillson/course-platform-go/internal/infra/metrics"
	"github.com/diillson/course-platform-go/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware gerencia rate limiting por IP e por rota
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		metrics: apiMetrics,
		logger:  logger,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		config := ratelimit.LimitConfig{
			Key:         c.ClientIP(),
			Limit:       100,
			Period:      time.Minute,
			BurstFactor: 1.5,
		}

		m.check(c, config, "ip_limit")
	}
}

// RouteRateLimit limita requisições para uma rota específica, útil para
// endpoints sensíveis como login e cadastro
func (m *RateLimitMiddleware) RouteRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		config := ratelimit.LimitConfig{
			Key:         "route:" + path + ":" + c.ClientIP(),
			Limit:       limit,
			Period:      period,
			BurstFactor: 1.2,
		}

		m.check(c, config, "route_limit")
	}
}

func (m *RateLimitMiddleware) check(c *gin.Context, config ratelimit.LimitConfig, limitType string) {
	allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
	if err != nil {
		// Rate limiting indisponível não derruba a requisição
		m.logger.Error("erro ao verificar rate limit", zap.Error(err))
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

	if !allowed {
		if m.metrics != nil {
			path := c.FullPath()
			if path == "" {
				path = c.Request.URL.Path
			}
			m.metrics.RateLimitExceeded(path, c.Request.Method, limitType)
		}

		c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "taxa de requisições excedida",
			"retry_after": int(resetAfter.Seconds()),
		})
		return
	}

	c.Next()
}
