package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ledger-api/internal/application/ports"
)

var _ ports.ReportCache = (*RedisCache)(nil)

// RedisCache caché de reportes en Redis con valores JSON.
// Invalidate incrementa un contador de generación que forma parte de cada clave:
// las entradas viejas dejan de leerse y expiran solas por TTL.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache construye el caché. prefix separa las claves de esta app (ej. "ledger").
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisCache) generationKey() string {
	return c.prefix + ":reports:gen"
}

// Generation generación vigente; 0 si nunca se invalidó.
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leer generación: %w", err)
	}
	return gen, nil
}

func (c *RedisCache) key(gen int64, key string) string {
	return fmt.Sprintf("%s:reports:%d:%s", c.prefix, gen, key)
}

// Get decodifica la entrada de la generación gen en dest. (false, nil) si no existe.
func (c *RedisCache) Get(ctx context.Context, gen int64, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decodificar %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value como JSON con el TTL dado bajo la generación gen. Si gen ya quedó atrás
// la entrada no se vuelve a leer y expira por TTL.
func (c *RedisCache) Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	return c.client.Set(ctx, c.key(gen, key), raw, ttl).Err()
}

// Invalidate pasa a la siguiente generación.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}
