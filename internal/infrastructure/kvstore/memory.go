// Package kvstore implementa repository.KVStore sobre memoria, Redis o PostgreSQL.
package kvstore

import (
	"context"
	"sync"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
)

// MemoryStore almacén en memoria, seguro para uso concurrente.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

var _ repository.KVStore = (*MemoryStore)(nil)

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

var _ repository.KVBatcher = (*MemoryStore)(nil)

// Batch acumula las escrituras de fn y las aplica juntas si fn no falla.
func (m *MemoryStore) Batch(_ context.Context, fn func(tx repository.KVStore) error) error {
	b := &memoryBatch{base: m, writes: map[string]*string{}}
	if err := fn(b); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range b.writes {
		if v == nil {
			delete(m.data, k)
			continue
		}
		m.data[k] = *v
	}
	return nil
}

// memoryBatch lecturas ven las escrituras pendientes del lote. nil = borrado.
type memoryBatch struct {
	base   *MemoryStore
	writes map[string]*string
}

func (b *memoryBatch) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := b.writes[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	return b.base.Get(ctx, key)
}

func (b *memoryBatch) Set(_ context.Context, key, value string) error {
	b.writes[key] = &value
	return nil
}

func (b *memoryBatch) Del(_ context.Context, key string) error {
	b.writes[key] = nil
	return nil
}
