package entity

import "github.com/shopspring/decimal"

// PeriodTargets metas de un periodo YYYY-MM. Cada meta es opcional.
type PeriodTargets struct {
	OrdersClosedTarget *int             `json:"ordersClosedTarget,omitempty"`
	KgClosedTarget     *decimal.Decimal `json:"kgClosedTarget,omitempty"`
	OtifTargetPct      *decimal.Decimal `json:"otifTargetPct,omitempty"`
}

// Empty indica que no hay ninguna meta definida.
func (t PeriodTargets) Empty() bool {
	return t.OrdersClosedTarget == nil && t.KgClosedTarget == nil && t.OtifTargetPct == nil
}

// CommercialTargets metas comerciales por periodo.
type CommercialTargets struct {
	TargetsByMonth map[string]PeriodTargets `json:"targetsByMonth"`
}

// Clone copia del mapa de metas.
func (c CommercialTargets) Clone() CommercialTargets {
	out := CommercialTargets{TargetsByMonth: make(map[string]PeriodTargets, len(c.TargetsByMonth))}
	for k, v := range c.TargetsByMonth {
		out.TargetsByMonth[k] = v
	}
	return out
}

// ClaimStatus estado de un reclamo.
type ClaimStatus string

const (
	ClaimPendingSend     ClaimStatus = "PENDIENTE ENVÍO"
	ClaimPendingResponse ClaimStatus = "PENDIENTE RESPUESTA"
	ClaimOK              ClaimStatus = "OK"
)

// Severidades de reclamo.
const (
	SeverityLow  = "LOW"
	SeverityMed  = "MED"
	SeverityHigh = "HIGH"
)

// Claim reclamo de cliente.
type Claim struct {
	ID                string           `json:"id"`
	Customer          string           `json:"customer"`
	Market            string           `json:"market"`
	Product           string           `json:"product"`
	QtyKg             decimal.Decimal  `json:"qtyKg"`
	Severity          string           `json:"severity"`
	Status            ClaimStatus      `json:"status"`
	OpenedDate        string           `json:"openedDate"`
	Description       string           `json:"description,omitempty"`
	ReceivedDate      string           `json:"receivedDate,omitempty"`
	ResponsiblePerson string           `json:"responsiblePerson,omitempty"`
	CloseReason       string           `json:"closeReason,omitempty"`
	CreditNote        bool             `json:"creditNote,omitempty"`
	CreditNoteAmount  *decimal.Decimal `json:"creditNoteAmount,omitempty"`
	ClosedDate        string           `json:"closedDate,omitempty"`
}

// GlobalFilters filtros de texto libre aplicados a pedidos, embarques y solicitudes.
type GlobalFilters struct {
	Customer string `json:"customer"`
	Product  string `json:"product"`
	Species  string `json:"species"`
	Caliber  string `json:"caliber"`
	Country  string `json:"country"`
}
