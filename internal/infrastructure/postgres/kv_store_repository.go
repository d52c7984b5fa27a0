package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
)

// Asegura que KVStoreRepo implementa repository.KVStore y repository.KVBatcher.
var (
	_ repository.KVStore   = (*KVStoreRepo)(nil)
	_ repository.KVBatcher = (*KVStoreRepo)(nil)
)

// KVStoreRepo almacén clave/valor sobre la tabla kv_store.
// value es TEXT: se guarda tal cual, aunque no sea JSON válido.
type KVStoreRepo struct {
	db dbtx
	tx *TxRunner // nil cuando el repo ya está atado a una transacción
}

// NewKVStoreRepository construye el adaptador.
func NewKVStoreRepository(pool *pgxpool.Pool) *KVStoreRepo {
	return &KVStoreRepo{db: pool, tx: NewTxRunner(pool)}
}

// Batch ejecuta fn dentro de una transacción: todas las escrituras o ninguna.
func (r *KVStoreRepo) Batch(ctx context.Context, fn func(tx repository.KVStore) error) error {
	if r.tx == nil {
		return fn(r)
	}
	return r.tx.Run(ctx, fn)
}

// EnsureSchema crea la tabla si no existe.
func (r *KVStoreRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Get lee una clave.
func (r *KVStoreRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza.
func (r *KVStoreRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Del elimina la clave; no falla si no existe.
func (r *KVStoreRepo) Del(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
