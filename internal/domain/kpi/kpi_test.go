package kpi_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func delivered(id, deliveredAt, eta string, docs entity.DocsStatus, kg string) entity.DeliveredRecord {
	return entity.DeliveredRecord{
		Shipment: entity.Shipment{
			ID: id, Customer: "UNIFROST", Country: "RUSSIA", Product: "ATLANTIC FROZEN HON IQF",
			ETA: eta, DocsStatus: docs, ShippedKg: dec(kg),
		},
		DeliveredAt: deliveredAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// OTIF
// ──────────────────────────────────────────────────────────────────────────────

func TestIsOTIF(t *testing.T) {
	cases := []struct {
		name        string
		deliveredAt string
		eta         string
		docs        entity.DocsStatus
		want        bool
	}{
		{"a tiempo y docs OK", "2025-07-09T12:00:00Z", "2025-07-10", entity.DocsOK, true},
		{"docs pendientes", "2025-07-09T12:00:00Z", "2025-07-10", entity.DocsPending, false},
		{"atrasado", "2025-07-11T00:00:00Z", "2025-07-10", entity.DocsOK, false},
		{"mismo instante", "2025-07-10T00:00:00Z", "2025-07-10", entity.DocsOK, true},
		{"mismo día, más tarde que la medianoche UTC", "2025-07-10T08:00:00Z", "2025-07-10", entity.DocsOK, false},
		{"eta ilegible", "2025-07-09T12:00:00Z", "pronto", entity.DocsOK, false},
		{"eta vacía", "2025-07-09T12:00:00Z", "", entity.DocsOK, false},
		{"deliveredAt ilegible", "ayer", "2025-07-10", entity.DocsOK, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := delivered("SHP-1", tc.deliveredAt, tc.eta, tc.docs, "1000")
			assert.Equal(t, tc.want, kpi.IsOTIF(d))
		})
	}
}

func TestComputeOTIF_UnDecimal(t *testing.T) {
	records := []entity.DeliveredRecord{
		delivered("A", "2025-07-01T10:00:00Z", "2025-07-05", entity.DocsOK, "1"),
		delivered("B", "2025-07-01T10:00:00Z", "2025-07-05", entity.DocsOK, "1"),
		delivered("C", "2025-07-09T10:00:00Z", "2025-07-05", entity.DocsOK, "1"),
	}
	otif := kpi.ComputeOTIF(records)
	assert.Equal(t, 2, otif.OK)
	assert.Equal(t, 3, otif.Total)
	assert.True(t, otif.Pct.Equal(dec("66.7")), "obtenido %s", otif.Pct)
}

func TestComputeOTIF_SinRegistros(t *testing.T) {
	otif := kpi.ComputeOTIF(nil)
	assert.True(t, otif.Pct.IsZero())
	assert.Zero(t, otif.OK)
	assert.Zero(t, otif.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Periodo y mix
// ──────────────────────────────────────────────────────────────────────────────

func TestInPeriod_UsaZonaHoraria(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// 2025-08-01T02:00Z es aún 31 de julio en Santiago.
	records := []entity.DeliveredRecord{
		delivered("A", "2025-08-01T02:00:00.000Z", "", entity.DocsOK, "1"),
		delivered("B", "2025-07-15T12:00:00.000Z", "", entity.DocsOK, "1"),
		delivered("C", "sin fecha", "", entity.DocsOK, "1"),
	}
	assert.Len(t, kpi.InPeriod(records, "2025-07", santiago), 2)
	assert.Len(t, kpi.InPeriod(records, "2025-07", time.UTC), 1)
}

func TestMix_AgrupaYOrdenaPorKg(t *testing.T) {
	a := delivered("A", "2025-07-02T00:00:00Z", "", entity.DocsOK, "15600")
	a.PriceUsdPerKg = decPtr("7.7")
	a.MarginUsdPerKg = decPtr("0.5")

	b := delivered("B", "2025-07-03T00:00:00Z", "", entity.DocsOK, "4400")
	b.PriceUsdPerKg = decPtr("7.5")

	c := delivered("C", "2025-07-04T00:00:00Z", "", entity.DocsOK, "25000")
	c.Product = "COHO HG IQF (9 lbs Up)"
	c.Country = ""
	c.Market = "MALAYSIA"

	rows := kpi.Mix([]entity.DeliveredRecord{a, b, c})
	require.Len(t, rows, 2)

	assert.Equal(t, entity.SpecieCoho, rows[0].Specie, "mayor kg primero")
	assert.Equal(t, "MALAYSIA", rows[0].Market)
	assert.Nil(t, rows[0].MarginUsd, "grupo sin márgenes queda sin margen, no en cero")
	assert.False(t, rows[0].MarginPartial)
	assert.True(t, rows[0].SharePct.Equal(dec("55.6")), "obtenido %s", rows[0].SharePct)
	assert.True(t, rows[1].SharePct.Equal(dec("44.4")))

	atl := rows[1]
	assert.Equal(t, entity.SpecieAtlantic, atl.Specie)
	assert.Equal(t, "RUSSIA", atl.Market)
	assert.Equal(t, 2, atl.Orders)
	assert.True(t, atl.Kg.Equal(dec("20000")))
	assert.True(t, atl.RevenueUsd.Equal(dec("153120")), "obtenido %s", atl.RevenueUsd)
	require.NotNil(t, atl.MarginUsd)
	assert.True(t, atl.MarginUsd.Equal(dec("7800")))
	assert.Equal(t, 1, atl.MarginRecords)
	assert.True(t, atl.MarginPartial)
}

func TestMix_MercadoFaltanteCaeAOtro(t *testing.T) {
	d := delivered("A", "2025-07-02T00:00:00Z", "", entity.DocsOK, "100")
	d.Country = ""
	rows := kpi.Mix([]entity.DeliveredRecord{d})
	require.Len(t, rows, 1)
	assert.Equal(t, "OTRO", rows[0].Market)
	assert.True(t, rows[0].SharePct.Equal(dec("100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Metas
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeCommercial_MetasYTono(t *testing.T) {
	records := []entity.DeliveredRecord{
		delivered("A", "2025-07-09T12:00:00Z", "2025-07-10", entity.DocsOK, "15600"),
		delivered("B", "2025-07-20T12:00:00Z", "2025-07-10", entity.DocsOK, "4400"),
		delivered("C", "2025-06-20T12:00:00Z", "2025-07-10", entity.DocsOK, "9999"),
	}
	orders := 4
	targets := entity.CommercialTargets{TargetsByMonth: map[string]entity.PeriodTargets{
		"2025-07": {OrdersClosedTarget: &orders, KgClosedTarget: decPtr("20000"), OtifTargetPct: decPtr("40")},
	}}
	claims := []entity.Claim{{Status: entity.ClaimOK}, {Status: entity.ClaimPendingSend}, {Status: entity.ClaimPendingResponse}}

	c := kpi.ComputeCommercial(records, targets, claims, "2025-07", time.UTC)

	assert.Equal(t, 2, c.OrdersClosed)
	assert.True(t, c.KgClosed.Equal(dec("20000")))
	assert.True(t, c.OTIF.Pct.Equal(dec("50")))

	assert.Equal(t, kpi.ToneWarning, c.OrdersTile.Tone)
	assert.Equal(t, "2/4 (50%)", c.OrdersTile.Text)

	assert.Equal(t, kpi.ToneGood, c.KgTile.Tone, "igual a la meta es bueno")
	assert.Contains(t, c.KgTile.Text, "(100%)")

	assert.Equal(t, kpi.ToneGood, c.OtifTile.Tone)
	assert.Equal(t, "1/2 (meta 40%)", c.OtifTile.Text)

	assert.Equal(t, kpi.ClaimsSummary{Open: 2, Resolved: 1}, c.Claims)
}

func TestComputeCommercial_SinMetasNiCierres(t *testing.T) {
	c := kpi.ComputeCommercial(nil, entity.CommercialTargets{}, nil, "2025-07", time.UTC)
	assert.Zero(t, c.OrdersClosed)
	assert.True(t, c.KgClosed.IsZero())
	assert.Empty(t, c.Mix)
	assert.Equal(t, kpi.ToneGood, c.OrdersTile.Tone)
	assert.Nil(t, c.OrdersTile.AttainmentPct)
	assert.Equal(t, "Meta: sin definir", c.OrdersTile.Text)
	assert.Equal(t, "Sin cierres en período", c.OtifTile.Text)
}

func TestToneFor(t *testing.T) {
	assert.Equal(t, kpi.ToneGood, kpi.ToneFor(dec("1"), nil))
	assert.Equal(t, kpi.ToneGood, kpi.ToneFor(dec("1"), decPtr("0")))
	assert.Equal(t, kpi.ToneWarning, kpi.ToneFor(dec("1"), decPtr("2")))
	assert.Equal(t, kpi.ToneGood, kpi.ToneFor(dec("3"), decPtr("2")))
}

func TestAttainment_Redondea(t *testing.T) {
	pct := kpi.Attainment(dec("2"), decPtr("3"))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(dec("67")))
	assert.Nil(t, kpi.Attainment(dec("2"), nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeDashboard(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	orders := make([]entity.BacklogOrder, 0, 10)
	for i := 10; i >= 1; i-- {
		orders = append(orders, entity.BacklogOrder{ID: "O", Customer: "C", Priority: i, PendingKg: dec("1000")})
	}
	shipments := []entity.Shipment{
		{ID: "S1", ETA: "2026-03-15", DocsStatus: entity.DocsOK},
		{ID: "S2", ETA: "2026-03-10", DocsStatus: entity.DocsOK},
		{ID: "S3", ETA: "2026-03-10", DocsStatus: entity.DocsDraftSent},
		{ID: "S4", ETA: "2026-05-01", DocsStatus: entity.DocsOK},
		{ID: "S5", ETA: "", DocsStatus: ""},
	}
	dels := []entity.DeliveredRecord{
		delivered("D1", "2026-03-01T12:00:00Z", "", entity.DocsOK, "1"),
		delivered("D2", "2026-02-28T12:00:00Z", "", entity.DocsOK, "1"),
	}

	d := kpi.ComputeDashboard(orders, shipments, dels, now, time.UTC)

	assert.True(t, d.PendingKg.Equal(dec("10000")))
	assert.Equal(t, 3, d.TransitOrders, "S3 por docs, S4 por ETA futura, S5 sin ETA")
	assert.Equal(t, 1, d.ClosedThisMonth)

	require.Len(t, d.PriorityChart, kpi.PriorityChartSize)
	assert.Equal(t, "P1 • C", d.PriorityChart[0].Label)
	assert.Equal(t, "P8 • C", d.PriorityChart[7].Label)

	require.Len(t, d.DocsChart, 3)
	assert.Equal(t, "OK", d.DocsChart[0].Label)
	assert.True(t, d.DocsChart[0].Value.Equal(dec("3")))

	labels := make([]string, 0, len(d.ETAChart))
	for _, r := range d.ETAChart {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"VENCIDA", "0-7D", "8-14D", "15-30D", "30+D", "SIN ETA"}, labels)
	assert.True(t, d.ETAChart[0].Value.Equal(dec("2")))
	assert.True(t, d.ETAChart[4].Value.Equal(dec("1")))

	require.Len(t, d.ETAToday, 1)
	assert.Equal(t, "S1", d.ETAToday[0].ID)
}
