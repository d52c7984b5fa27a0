package kvstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/kvstore"
)

func TestMemoryStore_GetSetDel(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()

	_, found, err := s.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "mf.orders.v1", `[]`))
	v, found, err := s.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Del(ctx, "mf.orders.v1"))
	_, found, _ = s.Get(ctx, "mf.orders.v1")
	assert.False(t, found)

	assert.NoError(t, s.Del(ctx, "no-existe"), "borrar una clave inexistente no falla")
}

func TestMemoryStore_Concurrente(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = s.Set(ctx, key, "v")
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, found, _ := s.Get(ctx, fmt.Sprintf("k%d", i))
		assert.True(t, found)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "a", "1"))

	err := s.Batch(ctx, func(tx repository.KVStore) error {
		require.NoError(t, tx.Set(ctx, "b", "2"))
		require.NoError(t, tx.Del(ctx, "a"))

		_, found, _ := tx.Get(ctx, "a")
		assert.False(t, found, "el lote ve su propio borrado")
		v, _, _ := tx.Get(ctx, "b")
		assert.Equal(t, "2", v)

		_, found, _ = s.Get(ctx, "b")
		assert.False(t, found, "fuera del lote aún no existe")
		return nil
	})
	require.NoError(t, err)

	_, found, _ := s.Get(ctx, "a")
	assert.False(t, found)
	v, _, _ := s.Get(ctx, "b")
	assert.Equal(t, "2", v)
}

func TestMemoryStore_BatchConErrorNoAplica(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()

	err := s.Batch(ctx, func(tx repository.KVStore) error {
		_ = tx.Set(ctx, "x", "1")
		return errors.New("abortar")
	})
	require.Error(t, err)

	_, found, _ := s.Get(ctx, "x")
	assert.False(t, found)
}
