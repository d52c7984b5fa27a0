package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
)

// PeriodQuery periodo YYYY-MM; vacío = mes en curso.
type PeriodQuery struct {
	Period string `query:"period" validate:"omitempty,period"`
}

// TargetsRequest metas del periodo. Meta ausente = sin definir.
type TargetsRequest struct {
	OrdersClosedTarget *int             `json:"ordersClosedTarget" validate:"omitempty,gte=0"`
	KgClosedTarget     *decimal.Decimal `json:"kgClosedTarget"`
	OtifTargetPct      *decimal.Decimal `json:"otifTargetPct"`
}

// Targets convierte la entrada a la entidad.
func (r TargetsRequest) Targets() entity.PeriodTargets {
	return entity.PeriodTargets{
		OrdersClosedTarget: r.OrdersClosedTarget,
		KgClosedTarget:     r.KgClosedTarget,
		OtifTargetPct:      r.OtifTargetPct,
	}
}

// CommercialResponse KPI comerciales con la etiqueta del mes.
type CommercialResponse struct {
	kpi.Commercial
	PeriodLabel string `json:"periodLabel"`
}

// DashboardResponse tablero de operación.
type DashboardResponse struct {
	kpi.Dashboard
	DateLabel string `json:"dateLabel"`
}
