package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisCache cria uma nova instância de RedisCache
func NewRedisCache(addr string, password string, db int, logger *zap.Logger) (*RedisCache, error) {
	tracer := otel.GetTracerProvider().Tracer("course-platform.cache.redis")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctx, span := tracer.Start(ctx, "RedisCache.Init",
		trace.WithAttributes(
			attribute.String("redis.addr", addr),
			attribute.Int("redis.db", db),
		),
	)
	defer span.End()

	if err := client.Ping(ctx).Err(); err != nil {
		span.SetStatus(codes.Error, "connection failure")
		return nil, err
	}

	span.SetStatus(codes.Ok, "connection successful")

	return &RedisCache{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

// NewRedisClientWithConfig cria um cliente Redis avulso validando a conexão
func NewRedisClientWithConfig(config *redis.Options, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(config)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Falha ao conectar ao Redis",
			zap.String("addr", config.Addr),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Conexão com Redis estabelecida com sucesso",
		zap.String("addr", config.Addr),
		zap.Int("db", config.DB))

	return client, nil
}

// Set armazena um valor no cache
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.expiration_ms", expiration.Milliseconds()),
		),
	)
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.Error(err))
		span.SetStatus(codes.Error, "serialization failure")
		return err
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		c.logger.Error("falha ao armazenar no Redis",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "redis error")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// Cache miss não é erro, é comportamento normal
			span.SetStatus(codes.Ok, "cache miss")
			span.SetAttributes(attribute.Bool("cache.hit", false))
			return false, nil
		}
		c.logger.Error("falha ao recuperar do cache",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "redis error")
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar do cache",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "deserialization failure")
		return false, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	span.SetStatus(codes.Ok, "cache hit")
	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Delete",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	result, err := c.client.Del(ctx, key).Result()
	if err != nil {
		c.logger.Error("falha ao remover do cache",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "redis error")
		return err
	}

	span.SetAttributes(attribute.Int64("cache.keys_removed", result))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Clear remove todos os valores do cache da aplicação
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.ClearPattern(ctx, "courseplatform:*")
}

// ClearPattern remove valores do cache por padrão
func (c *RedisCache) ClearPattern(ctx context.Context, pattern string) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.ClearPattern",
		trace.WithAttributes(attribute.String("cache.pattern", pattern)),
	)
	defer span.End()

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Error("falha ao listar chaves do cache", zap.Error(err))
		span.SetStatus(codes.Error, "redis error")
		return err
	}

	span.SetAttributes(attribute.Int("cache.keys_found", len(keys)))

	if len(keys) > 0 {
		result, err := c.client.Del(ctx, keys...).Result()
		if err != nil {
			c.logger.Error("falha ao remover chaves do cache",
				zap.Int("count", len(keys)),
				zap.Error(err))
			span.SetStatus(codes.Error, "redis delete error")
			return err
		}

		span.SetAttributes(attribute.Int64("cache.keys_removed", result))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ping verifica se o Redis está acessível
func (c *RedisCache) Ping(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Ping")
	defer span.End()

	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Error("falha ao fazer ping no Redis", zap.Error(err))
		span.SetStatus(codes.Error, "redis ping failure")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
