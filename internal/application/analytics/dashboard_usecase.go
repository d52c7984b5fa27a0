// Package analytics contiene los casos de uso de reportes: el tablero de
// operación y los KPI comerciales por periodo (con su informe PDF).
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// DashboardUseCase calcula tablero y KPI desde el estado vigente de la consola.
//
// No guarda nada: cada llamada recalcula desde las colecciones actuales.
type DashboardUseCase struct {
	state     StateReader
	generator ReportPDFGenerator
	company   string
}

// NewDashboardUseCase construye el caso de uso. generator puede ser nil si no se
// expone el informe PDF.
func NewDashboardUseCase(state StateReader, generator ReportPDFGenerator, company string) *DashboardUseCase {
	return &DashboardUseCase{state: state, generator: generator, company: company}
}

// GetDashboard tablero de operación. Pedidos y embarques pasan por el filtro
// global; los entregados no.
func (uc *DashboardUseCase) GetDashboard(_ context.Context) (*dto.DashboardResponse, error) {
	s := uc.state.Snapshot()
	now, loc := uc.state.Now(), uc.state.Location()

	d := kpi.ComputeDashboard(
		lifecycle.FilterOrders(s.Orders, s.Filters),
		lifecycle.FilterShipments(s.Shipments, s.Filters),
		s.Delivered,
		now,
		loc,
	)
	return &dto.DashboardResponse{Dashboard: d, DateLabel: monthLabel(now.In(loc))}, nil
}

// GetCommercial KPI comerciales del periodo YYYY-MM; vacío = mes en curso.
func (uc *DashboardUseCase) GetCommercial(_ context.Context, period string) (*dto.CommercialResponse, error) {
	period, label, err := uc.resolvePeriod(period)
	if err != nil {
		return nil, err
	}
	s := uc.state.Snapshot()
	c := kpi.ComputeCommercial(s.Delivered, s.Targets, s.Claims, period, uc.state.Location())
	return &dto.CommercialResponse{Commercial: c, PeriodLabel: label}, nil
}

// CommercialReportPDF informe PDF de los KPI comerciales del periodo.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *DashboardUseCase) CommercialReportPDF(ctx context.Context, period string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", errors.New("informe comercial: generador PDF no configurado")
	}
	c, err := uc.GetCommercial(ctx, period)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateCommercialReport(ctx, CommercialReport{
		KPI:         c.Commercial,
		PeriodLabel: c.PeriodLabel,
		Company:     uc.company,
		GeneratedAt: uc.state.Now().In(uc.state.Location()),
	})
	if err != nil {
		return nil, "", fmt.Errorf("informe comercial: %w", err)
	}
	return pdf, fmt.Sprintf("kpi-comercial-%s.pdf", c.Period), nil
}

func (uc *DashboardUseCase) resolvePeriod(period string) (string, string, error) {
	if period == "" {
		period = derive.PeriodOf(uc.state.Now(), uc.state.Location())
	}
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return "", "", fmt.Errorf("periodo %q: %w", period, domain.ErrInvalidInput)
	}
	return period, monthLabel(t), nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
