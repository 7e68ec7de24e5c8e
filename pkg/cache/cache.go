package cache

import (
	"context"
	"time"
)

// Cache define a interface de cache da aplicação. As implementações
// (memória, Redis, no-op) são intercambiáveis na subida da aplicação.
type Cache interface {
	// Set armazena um valor com tempo de expiração
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor para dest e informa se a chave existia
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Delete remove uma chave do cache
	Delete(ctx context.Context, key string) error

	// Clear remove todos os valores do cache
	Clear(ctx context.Context) error

	// Ping verifica se o cache está acessível
	Ping(ctx context.Context) error
}
