package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/pdf"
)

func TestGenerateCommercialReport_ConMix(t *testing.T) {
	margin := decimal.NewFromInt(7800)
	report := appanalytics.CommercialReport{
		KPI: kpi.Commercial{
			Period:       "2025-07",
			OrdersClosed: 3,
			KgClosed:     decimal.NewFromInt(45000),
			OTIF:         kpi.OTIF{Pct: decimal.RequireFromString("66.7"), OK: 2, Total: 3},
			Mix: []kpi.MixRow{{
				Specie:        entity.SpecieCoho,
				Market:        "MALAYSIA",
				Kg:            decimal.NewFromInt(25000),
				Orders:        1,
				RevenueUsd:    decimal.NewFromInt(167500),
				MarginUsd:     &margin,
				MarginPartial: true,
				SharePct:      decimal.RequireFromString("55.6"),
			}},
			OrdersTile: kpi.TargetTile{Text: "3/4 (75%)", Tone: kpi.ToneWarning},
			KgTile:     kpi.TargetTile{Text: "Meta kg: sin definir", Tone: kpi.ToneGood},
			OtifTile:   kpi.TargetTile{Text: "2/3 (meta 90%)", Tone: kpi.ToneWarning},
		},
		PeriodLabel: "Julio 2025",
		Company:     "Multi X",
		GeneratedAt: time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCommercialReport(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateCommercialReport_SinCierres(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateCommercialReport(context.Background(), appanalytics.CommercialReport{
		KPI:         kpi.Commercial{Period: "2025-08"},
		PeriodLabel: "Agosto 2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
