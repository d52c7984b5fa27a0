package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/domain/repository"
)

// fakeDB interpreta las sentencias de KVStoreRepo sobre un mapa.
type fakeDB struct {
	rows    map[string]string
	execErr error
	execs   []string
}

func newFakeDB() *fakeDB { return &fakeDB{rows: map[string]string{}} }

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	switch {
	case strings.Contains(sql, "INSERT INTO kv_store"):
		f.rows[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM kv_store"):
		delete(f.rows, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	default:
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.value
	return nil
}

func TestKVStoreRepo_GetSinFilas(t *testing.T) {
	repo := &KVStoreRepo{db: newFakeDB()}

	v, found, err := repo.Get(context.Background(), "mf.orders.v1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestKVStoreRepo_ValorIlegibleSeGuardaTalCual(t *testing.T) {
	ctx := context.Background()
	repo := &KVStoreRepo{db: newFakeDB()}

	require.NoError(t, repo.Set(ctx, "mf.orders.v1", "{no es json"))
	v, found, err := repo.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "{no es json", v)

	require.NoError(t, repo.Del(ctx, "mf.orders.v1"))
	_, found, err = repo.Get(ctx, "mf.orders.v1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKVStoreRepo_ErroresSeEnvuelvenConLaClave(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	db.execErr = errors.New("conn closed")
	repo := &KVStoreRepo{db: db}

	err := repo.Set(ctx, "mf.claims.v1", "[]")
	require.ErrorIs(t, err, db.execErr)
	assert.Contains(t, err.Error(), "mf.claims.v1")

	err = repo.EnsureSchema(ctx)
	require.ErrorIs(t, err, db.execErr)
	assert.Contains(t, err.Error(), "kv_store")
}

func TestKVStoreRepo_EnsureSchemaColumnaTexto(t *testing.T) {
	db := newFakeDB()
	repo := &KVStoreRepo{db: db}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "value      TEXT NOT NULL")
}

func TestKVStoreRepo_BatchDentroDeTransaccion(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	repo := &KVStoreRepo{db: db}
	boom := errors.New("fallo")

	err := repo.Batch(ctx, func(tx repository.KVStore) error {
		require.NoError(t, tx.Set(ctx, "a", "1"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "1", db.rows["a"], "atado a una transacción, el lote escribe sobre ella")
}
