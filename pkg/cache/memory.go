package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diillson/course-platform-go/internal/infra/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória.
// Os valores são serializados em JSON, como no cache Redis, para que as
// duas implementações sejam intercambiáveis.
type MemoryCache struct {
	cache   *gocache.Cache
	mutex   sync.RWMutex
	logger  *zap.Logger
	hits    int64
	misses  int64
	metrics *metrics.APIMetrics
}

// NewMemoryCache cria uma nova instância de MemoryCache
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:   gocache.New(defaultExpiration, cleanupInterval),
		logger:  logger,
		metrics: apiMetrics,
	}
}

// Set armazena um valor no cache
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mutex.RLock()
	value, found := c.cache.Get(key)
	c.mutex.RUnlock()

	if !found {
		atomic.AddInt64(&c.misses, 1)
		c.updateMetrics()
		return false, nil
	}

	data, ok := value.([]byte)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		c.updateMetrics()
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar do cache", zap.String("key", key), zap.Error(err))
		return false, err
	}

	atomic.AddInt64(&c.hits, 1)
	c.updateMetrics()
	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Flush()
	return nil
}

// Ping verifica se o cache está funcionando
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil // O cache em memória está sempre disponível
}

func (c *MemoryCache) updateMetrics() {
	if c.metrics == nil {
		return
	}

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses
	if total > 0 {
		c.metrics.UpdateCacheHitRatio("memory", float64(hits)/float64(total))
	}
}
