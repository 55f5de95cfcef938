// Package cache conserva el último snapshot de stock reconstruido por alcance (sucursal o "all").
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/application/inventory"
)

var _ inventory.SnapshotCache = (*RedisSnapshotCache)(nil)

const keyPrefix = "stock-register:snapshot:"

// NewRedisClient abre el cliente desde una URL redis://, con contraseña y DB opcionales, y verifica la conexión.
func NewRedisClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if password != "" {
		opt.Password = password
	}
	opt.DB = db

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisSnapshotCache guarda los snapshots como JSON con TTL.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache construye la caché. ttl <= 0 significa sin expiración.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

// Close libera las conexiones del cliente.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

// Key clave redis de un alcance.
func Key(scope string) string {
	return keyPrefix + scope
}

// Get devuelve (nil, false, nil) si no hay snapshot guardado para scope.
func (c *RedisSnapshotCache) Get(ctx context.Context, scope string) (*dto.StockSnapshotDTO, bool, error) {
	raw, err := c.client.Get(ctx, Key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", scope, err)
	}
	var snap dto.StockSnapshotDTO
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("decodificar snapshot %s: %w", scope, err)
	}
	return &snap, true, nil
}

// Set reemplaza el snapshot de scope.
func (c *RedisSnapshotCache) Set(ctx context.Context, scope string, snapshot *dto.StockSnapshotDTO) error {
	if snapshot == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("serializar snapshot %s: %w", scope, err)
	}
	if err := c.client.Set(ctx, Key(scope), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", scope, err)
	}
	return nil
}
