package persistence_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/kvstore"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/persistence"
	"github.com/jhoicas/mf-comercial/pkg/logger"
)

// failingStore falla en todas las operaciones.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store caído")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("cuota excedida") }
func (failingStore) Del(context.Context, string) error         { return errors.New("store caído") }

func orderIDs(orders []entity.BacklogOrder) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Load
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_SinDatosUsaSeed(t *testing.T) {
	repo := persistence.NewConsoleRepository(kvstore.NewMemoryStore(), "", nil)
	s := repo.Load(context.Background())

	assert.Equal(t, []string{"ORD-1001", "ORD-1002", "ORD-1003"}, orderIDs(s.Orders))
	assert.NotEmpty(t, s.Requests)
	assert.NotEmpty(t, s.Shipments)
	assert.Len(t, s.Claims, 5)
	assert.Empty(t, s.Delivered, "entregados no se siembran")
	assert.NotNil(t, s.Delivered)
	assert.Empty(t, s.History)
	assert.NotNil(t, s.Targets.TargetsByMonth)
}

func TestLoad_DatosInvalidosCaenAlSeed(t *testing.T) {
	cases := map[string]string{
		"no es JSON":     `{{{`,
		"objeto":         `{"id":"ORD-X"}`,
		"arreglo vacío":  `[]`,
		"sin id":         `[{"customer":"X"}]`,
		"id vacío":       `[{"id":""}]`,
		"id numérico":    `[{"id":42}]`,
		"null":           `null`,
		"mezcla válidos": `[{"id":"ORD-X"},{"pi":"1"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := kvstore.NewMemoryStore()
			require.NoError(t, store.Set(context.Background(), persistence.KeyOrders, raw))
			s := persistence.NewConsoleRepository(store, "", nil).Load(context.Background())
			assert.Equal(t, []string{"ORD-1001", "ORD-1002", "ORD-1003"}, orderIDs(s.Orders))
		})
	}
}

func TestLoad_EmbarquesVaciosSeRespetan(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), persistence.KeyShipments, `[]`))
	s := persistence.NewConsoleRepository(store, "", nil).Load(context.Background())
	assert.Empty(t, s.Shipments)
}

func TestLoad_ErrorDelStoreNoPropaga(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Env: "production", Level: "debug"}, &buf)

	s := persistence.NewConsoleRepository(failingStore{}, "", log).Load(context.Background())
	assert.Len(t, s.Orders, 3)
	assert.Contains(t, buf.String(), `"component":"persistence"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Save
// ──────────────────────────────────────────────────────────────────────────────

func TestSave_RoundTripConPrefijo(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := persistence.NewConsoleRepository(store, "test:", nil)

	s := repo.Load(ctx)
	env := lifecycle.Env{Now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), Loc: time.UTC}
	s, err := lifecycle.MoveToPriority(s, "ORD-1003", 1)
	require.NoError(t, err)
	s, ok := lifecycle.ConfirmDelivered(s, env, s.Shipments[0].ID)
	require.True(t, ok)
	repo.Save(ctx, s, s.Dirty())

	_, found, _ := store.Get(ctx, persistence.KeyOrders)
	assert.False(t, found, "sin prefijo no existe")
	_, found, _ = store.Get(ctx, "test:"+persistence.KeyOrders)
	assert.True(t, found)

	reloaded := repo.Load(ctx)
	assert.Equal(t, []string{"ORD-1003", "ORD-1001", "ORD-1002"}, orderIDs(reloaded.Orders))
	require.Len(t, reloaded.Delivered, 1)
	assert.Equal(t, "2026-03-15T12:00:00.000Z", reloaded.Delivered[0].DeliveredAt)
	require.NotNil(t, reloaded.Delivered[0].PriceUsdPerKg)
	assert.Len(t, reloaded.Shipments, len(s.Shipments))
	assert.Len(t, reloaded.History, 1)
}

func TestSave_SoloColeccionesCambiadas(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := persistence.NewConsoleRepository(store, "", nil)

	repo.Save(ctx, repo.Load(ctx), lifecycle.ChangedClaims)

	_, found, _ := store.Get(ctx, persistence.KeyClaims)
	assert.True(t, found)
	_, found, _ = store.Get(ctx, persistence.KeyOrders)
	assert.False(t, found)
}

func TestSave_ErrorSeRegistraYNoPropaga(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf)
	repo := persistence.NewConsoleRepository(failingStore{}, "", log)

	assert.NotPanics(t, func() {
		repo.Save(context.Background(), lifecycle.State{}, lifecycle.ChangedOrders)
	})
	assert.Contains(t, buf.String(), "cuota excedida")
	assert.Contains(t, buf.String(), persistence.KeyOrders)
}

// failOnKey almacén en memoria cuyo lote falla al escribir failKey.
type failOnKey struct {
	*kvstore.MemoryStore
	failKey string
}

func (f failOnKey) Batch(ctx context.Context, fn func(tx repository.KVStore) error) error {
	return f.MemoryStore.Batch(ctx, func(tx repository.KVStore) error {
		return fn(failingTx{KVStore: tx, failKey: f.failKey})
	})
}

type failingTx struct {
	repository.KVStore
	failKey string
}

func (t failingTx) Set(ctx context.Context, key, value string) error {
	if key == t.failKey {
		return errors.New("disco lleno")
	}
	return t.KVStore.Set(ctx, key, value)
}

func TestSave_LoteFallidoNoEscribeParcial(t *testing.T) {
	ctx := context.Background()
	store := failOnKey{MemoryStore: kvstore.NewMemoryStore(), failKey: persistence.KeyHistory}
	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf)
	repo := persistence.NewConsoleRepository(store, "", log)

	s := repo.Load(ctx)
	repo.Save(ctx, s, lifecycle.ChangedOrders|lifecycle.ChangedShipments|lifecycle.ChangedHistory)

	for _, key := range []string{persistence.KeyOrders, persistence.KeyShipments, persistence.KeyHistory} {
		_, found, _ := store.Get(ctx, key)
		assert.False(t, found, "%s no debe escribirse si el lote falla", key)
	}
	assert.Contains(t, buf.String(), "disco lleno")

	store.failKey = ""
	repo = persistence.NewConsoleRepository(store, "", nil)
	repo.Save(ctx, s, lifecycle.ChangedOrders|lifecycle.ChangedShipments)
	_, found, _ := store.Get(ctx, persistence.KeyShipments)
	assert.True(t, found)
}

func TestTargets_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := persistence.NewConsoleRepository(store, "", nil)

	n := 12
	s, err := lifecycle.SetTargets(repo.Load(ctx), "2025-07", entity.PeriodTargets{OrdersClosedTarget: &n})
	require.NoError(t, err)
	repo.Save(ctx, s, s.Dirty())

	got := repo.Load(ctx).Targets.TargetsByMonth["2025-07"]
	require.NotNil(t, got.OrdersClosedTarget)
	assert.Equal(t, 12, *got.OrdersClosedTarget)
}

func TestTargets_LimpiarUltimoPeriodoBorraLaClave(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := persistence.NewConsoleRepository(store, "mf:", nil)

	n := 12
	s, err := lifecycle.SetTargets(repo.Load(ctx), "2025-07", entity.PeriodTargets{OrdersClosedTarget: &n})
	require.NoError(t, err)
	repo.Save(ctx, s, s.Dirty())
	_, found, err := store.Get(ctx, "mf:"+persistence.KeyTargets)
	require.NoError(t, err)
	require.True(t, found)

	s = lifecycle.ClearTargets(repo.Load(ctx), "2025-07")
	repo.Save(ctx, s, s.Dirty())

	_, found, err = store.Get(ctx, "mf:"+persistence.KeyTargets)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, repo.Load(ctx).Targets.TargetsByMonth)
}

func TestLoad_RecalculaInstruccionesDeEmbarque(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, persistence.KeyOrders,
		`[{"id":"ORD-9","shippingConsignee":"","shippingNotify":"  ","shippingInstructionsOk":true},`+
			`{"id":"ORD-10","shippingConsignee":"Dongwon","shippingNotify":"Kim","shippingInstructionsOk":false}]`))
	require.NoError(t, store.Set(ctx, persistence.KeyRequests,
		`[{"id":"REQ-9","consignee":"","notify":"Kim","shippingInstructionsStatus":"OK"},`+
			`{"id":"REQ-10","consignee":"Dongwon","notify":"Kim","shippingInstructionsStatus":"PENDIENTE"}]`))

	s := persistence.NewConsoleRepository(store, "", nil).Load(ctx)

	require.Len(t, s.Orders, 2)
	assert.False(t, s.Orders[0].ShippingInstructionsOk)
	assert.True(t, s.Orders[1].ShippingInstructionsOk)
	require.Len(t, s.Requests, 2)
	assert.Equal(t, entity.ShippingPending, s.Requests[0].ShippingInstructionsStatus)
	assert.Equal(t, entity.ShippingOK, s.Requests[1].ShippingInstructionsStatus)
}

func TestSeed_ShippingInstructionsConsistentes(t *testing.T) {
	for _, o := range persistence.DefaultSeed().Orders {
		ok := o.ShippingConsignee != "" && o.ShippingNotify != ""
		assert.Equal(t, ok, o.ShippingInstructionsOk, o.ID)
	}
}
