package ports

import (
	"context"
	"time"
)

// Cache puerto del caché read-through (Redis en producción). Best-effort en
// todos los llamadores: un error de lectura o escritura nunca falla la
// petición, solo omite la optimización y se recalcula.
type Cache interface {
	// Get deserializa el valor en dest. Devuelve false si la llave no existe.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set serializa y guarda el valor con TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePattern elimina todas las llaves que matcheen el patrón glob
	// (ej. "balances:*").
	DeletePattern(ctx context.Context, pattern string) error
}
