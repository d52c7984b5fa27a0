package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
)

// fakeRedis cliente en memoria con la semántica de respuesta de go-redis.
type fakeRedis struct {
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Pipelined como go-redis: si fn falla no se ejecuta nada.
func (f *fakeRedis) Pipelined(_ context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	pipe := &fakePipe{}
	if err := fn(pipe); err != nil {
		return nil, err
	}
	for _, op := range pipe.ops {
		if op.del {
			delete(f.data, op.key)
			continue
		}
		f.data[op.key] = op.value
	}
	return nil, nil
}

type pipeOp struct {
	key   string
	value string
	del   bool
}

// fakePipe solo implementa Set y Del; el resto del Pipeliner no se usa.
type fakePipe struct {
	redis.Pipeliner
	ops []pipeOp
}

func (p *fakePipe) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	p.ops = append(p.ops, pipeOp{key: key, value: value.(string)})
	return redis.NewStatusResult("QUEUED", nil)
}

func (p *fakePipe) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		p.ops = append(p.ops, pipeOp{key: k, del: true})
	}
	return redis.NewIntResult(0, nil)
}

func TestRedisStore_GetClaveInexistente(t *testing.T) {
	s := &RedisStore{client: newFakeRedis()}

	v, found, err := s.Get(context.Background(), "mf.orders.v1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestRedisStore_GetErrorDelServidor(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")
	s := &RedisStore{client: fake}

	_, found, err := s.Get(context.Background(), "mf.orders.v1")
	require.Error(t, err)
	assert.False(t, found)
	assert.NotErrorIs(t, err, redis.Nil)
}

func TestRedisStore_SetGetDel(t *testing.T) {
	ctx := context.Background()
	s := &RedisStore{client: newFakeRedis()}

	require.NoError(t, s.Set(ctx, "mf.orders.v1", "{no es json"))
	v, found, err := s.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "{no es json", v)

	require.NoError(t, s.Del(ctx, "mf.orders.v1"))
	_, found, err = s.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_BatchAplicaAlFinal(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.data["c"] = "viejo"
	s := &RedisStore{client: fake}

	err := s.Batch(ctx, func(tx repository.KVStore) error {
		require.NoError(t, tx.Set(ctx, "a", "1"))
		require.NoError(t, tx.Del(ctx, "c"))
		_, found, err := tx.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, found, "las lecturas no ven escrituras pendientes del pipeline")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, fake.data)
}

func TestRedisStore_BatchConErrorNoEscribe(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := &RedisStore{client: fake}
	boom := errors.New("serializar")

	err := s.Batch(ctx, func(tx repository.KVStore) error {
		require.NoError(t, tx.Set(ctx, "a", "1"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, fake.data)
}
