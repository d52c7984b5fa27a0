package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

type fixedState struct {
	s   lifecycle.State
	now time.Time
}

func (f fixedState) Snapshot() lifecycle.State { return f.s }
func (f fixedState) Now() time.Time            { return f.now }
func (f fixedState) Location() *time.Location  { return time.UTC }

type fakeGenerator struct {
	got *analytics.CommercialReport
}

func (g *fakeGenerator) GenerateCommercialReport(_ context.Context, r analytics.CommercialReport) ([]byte, error) {
	g.got = &r
	return []byte("%PDF-1.4"), nil
}

func delivered(id, at, eta string, docs entity.DocsStatus, kg int64) entity.DeliveredRecord {
	return entity.DeliveredRecord{
		Shipment: entity.Shipment{
			ID:         id,
			Customer:   "Cliente " + id,
			Product:    "Atlantic Salmon",
			Country:    "KOREA",
			ETA:        eta,
			DocsStatus: docs,
			ShippedKg:  decimal.NewFromInt(kg),
		},
		DeliveredAt: at,
	}
}

func newState() fixedState {
	return fixedState{
		now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		s: lifecycle.State{
			Orders: []entity.BacklogOrder{
				{ID: "ORD-1", Customer: "Dongwon", Priority: 1, PendingKg: decimal.NewFromInt(1000)},
				{ID: "ORD-2", Customer: "Thai Foods", Priority: 2, PendingKg: decimal.NewFromInt(2500)},
			},
			Delivered: []entity.DeliveredRecord{
				delivered("SHP-1", "2026-03-02T10:00:00.000Z", "2026-03-05", entity.DocsOK, 10000),
				delivered("SHP-2", "2026-03-10T10:00:00.000Z", "2026-03-05", entity.DocsOK, 5000),
				delivered("SHP-3", "2026-02-10T10:00:00.000Z", "2026-02-15", entity.DocsOK, 7000),
			},
			Targets: entity.CommercialTargets{TargetsByMonth: map[string]entity.PeriodTargets{}},
		},
	}
}

func TestGetDashboard_AplicaFiltroGlobal(t *testing.T) {
	st := newState()
	st.s.Filters = entity.GlobalFilters{Customer: "thai"}
	uc := analytics.NewDashboardUseCase(st, nil, "")

	d, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.PendingKg.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 2, d.ClosedThisMonth, "entregados no se filtran")
	assert.Equal(t, "Marzo 2026", d.DateLabel)
}

func TestGetCommercial_PeriodoPorDefectoEsMesActual(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newState(), nil, "")

	c, err := uc.GetCommercial(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", c.Period)
	assert.Equal(t, "Marzo 2026", c.PeriodLabel)
	assert.Equal(t, 2, c.OrdersClosed)
	assert.Equal(t, 1, c.OTIF.OK)
	assert.True(t, c.OTIF.Pct.Equal(decimal.NewFromInt(50)))

	c, err = uc.GetCommercial(context.Background(), "2026-02")
	require.NoError(t, err)
	assert.Equal(t, "Febrero 2026", c.PeriodLabel)
	assert.True(t, c.KgClosed.Equal(decimal.NewFromInt(7000)))
}

func TestGetCommercial_PeriodoInvalido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newState(), nil, "")
	_, err := uc.GetCommercial(context.Background(), "2026-3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommercialReportPDF(t *testing.T) {
	gen := &fakeGenerator{}
	uc := analytics.NewDashboardUseCase(newState(), gen, "Multi X")

	pdf, name, err := uc.CommercialReportPDF(context.Background(), "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "kpi-comercial-2026-03.pdf", name)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	require.NotNil(t, gen.got)
	assert.Equal(t, "Multi X", gen.got.Company)
	assert.Equal(t, "Marzo 2026", gen.got.PeriodLabel)
	assert.Equal(t, 2, gen.got.KPI.OrdersClosed)
}

func TestCommercialReportPDF_SinGenerador(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newState(), nil, "")
	_, _, err := uc.CommercialReportPDF(context.Background(), "2026-03")
	assert.Error(t, err)
}
