package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// StateReader lectura del estado de la consola (implementado por console.UseCase).
type StateReader interface {
	Snapshot() lifecycle.State
	Now() time.Time
	Location() *time.Location
}

// CommercialReport datos del informe comercial de un periodo.
type CommercialReport struct {
	KPI         kpi.Commercial
	PeriodLabel string // ej: "Julio 2025"
	Company     string
	GeneratedAt time.Time
}

// ReportPDFGenerator genera el PDF del informe comercial.
type ReportPDFGenerator interface {
	GenerateCommercialReport(ctx context.Context, report CommercialReport) ([]byte, error)
}
