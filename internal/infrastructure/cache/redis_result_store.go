// Package cache guarda en Redis el último resultado MRP por horizonte.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/application/mrp"
	"github.com/jhoicas/ppic-api/internal/domain"
	"github.com/jhoicas/ppic-api/pkg/config"
)

var _ mrp.ResultStore = (*RedisResultStore)(nil)

// RedisResultStore implementa mrp.ResultStore. Clave: {prefijo}mrp:latest:{horizonte}.
type RedisResultStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: conectar a %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisResultStore construye el store sobre un cliente existente.
func NewRedisResultStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisResultStore {
	if keyPrefix == "" {
		keyPrefix = "ppic:"
	}
	return &RedisResultStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisResultStore) key(horizon int) string {
	return s.keyPrefix + "mrp:latest:" + strconv.Itoa(horizon)
}

// Save reemplaza el último resultado del horizonte.
func (s *RedisResultStore) Save(ctx context.Context, result *dto.MRPResultResponse) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis: serializar resultado: %w", err)
	}
	if err := s.client.Set(ctx, s.key(result.PlanningHorizon), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar resultado: %w", err)
	}
	return nil
}

// Latest retorna domain.ErrNotFound si la clave no existe o expiró.
func (s *RedisResultStore) Latest(ctx context.Context, horizon int) (*dto.MRPResultResponse, error) {
	payload, err := s.client.Get(ctx, s.key(horizon)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.DataAccess("redis: leer resultado", err)
	}
	var out dto.MRPResultResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("redis: resultado corrupto: %w", err)
	}
	return &out, nil
}

// Ping usado por /health.
func (s *RedisResultStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
