// Package redis implementa el puerto de caché sobre Redis usando go-redis/v9.
// Los valores se serializan como JSON; la invalidación por patrón usa SCAN
// para no bloquear el servidor con KEYS.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/saldos-api/internal/application/ports"
	"github.com/jhoicas/saldos-api/pkg/config"
)

var _ ports.Cache = (*Cache)(nil)

// Cache adaptador Redis del puerto ports.Cache.
type Cache struct {
	client *redis.Client
}

// NewCache conecta a Redis y verifica la conexión con PING.
func NewCache(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectando a redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// Get deserializa el valor guardado bajo key en dest. Devuelve false si la
// llave no existe.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("deserializando caché %q: %w", key, err)
	}
	return true, nil
}

// Set serializa value como JSON y lo guarda con el TTL indicado.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializando caché %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// DeletePattern elimina todas las llaves que matcheen el patrón glob.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del patrón %q: %w", pattern, err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan patrón %q: %w", pattern, err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del patrón %q: %w", pattern, err)
		}
	}
	return nil
}

// Close cierra la conexión al servidor.
func (c *Cache) Close() error {
	return c.client.Close()
}
