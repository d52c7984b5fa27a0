package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/pkg/config"
)

// RedisStore almacén sobre Redis. Las claves no expiran.
type RedisStore struct {
	client redisClient
}

// redisClient comandos de *redis.Client que usa el almacén.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Pipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisStore envuelve un cliente ya conectado.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ repository.KVStore = (*RedisStore)(nil)

// Get redis.Nil se traduce a found=false.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

var _ repository.KVBatcher = (*RedisStore)(nil)

// Batch encola las escrituras de fn en un pipeline. Las lecturas dentro del
// lote van directo al servidor y no ven las escrituras pendientes.
func (r *RedisStore) Batch(ctx context.Context, fn func(tx repository.KVStore) error) error {
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		return fn(&redisBatch{store: r, pipe: pipe})
	})
	return err
}

type redisBatch struct {
	store *RedisStore
	pipe  redis.Pipeliner
}

func (b *redisBatch) Get(ctx context.Context, key string) (string, bool, error) {
	return b.store.Get(ctx, key)
}

func (b *redisBatch) Set(ctx context.Context, key, value string) error {
	return b.pipe.Set(ctx, key, value, 0).Err()
}

func (b *redisBatch) Del(ctx context.Context, key string) error {
	return b.pipe.Del(ctx, key).Err()
}
