package dto

import (
	"time"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// PriorityRequest nueva posición del pedido (se acota a 1..N).
// Cero y negativos son válidos y llevan el pedido al primer lugar.
type PriorityRequest struct {
	Priority *int `json:"priority" validate:"required"`
}

// ShippingRequest edición de consignee / notify.
type ShippingRequest struct {
	Consignee *string `json:"consignee" validate:"omitempty,max=300"`
	Notify    *string `json:"notify" validate:"omitempty,max=300"`
}

// DelayRequest edición del seguimiento de atraso. Cadena vacía limpia el campo.
type DelayRequest struct {
	ReasonCode *string `json:"delayReasonCode" validate:"omitempty,oneof=QC RM COM BLOQ PROD"`
	Owner      *string `json:"delayOwner"`
	Comment    *string `json:"delayComment"`
}

// Patch convierte la entrada al patch de dominio.
func (r DelayRequest) Patch() lifecycle.DelayPatch {
	p := lifecycle.DelayPatch{Owner: r.Owner, Comment: r.Comment}
	if r.ReasonCode != nil {
		reason := entity.DelayReason(*r.ReasonCode)
		p.Reason = &reason
	}
	return p
}

// OrderView pedido con sus campos derivados para la vista de backlog.
type OrderView struct {
	entity.BacklogOrder
	ETDRisk     derive.ETDRisk `json:"etdRisk"`
	CanDispatch bool           `json:"canDispatch"`
}

// NewOrderViews agrega semáforo de ETD y habilitación de despacho.
func NewOrderViews(orders []entity.BacklogOrder, now time.Time, loc *time.Location) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderView{
			BacklogOrder: o,
			ETDRisk:      derive.ETDRiskBucket(o.ETD, now, loc),
			CanDispatch:  lifecycle.CanDispatch(o, now, loc),
		})
	}
	return out
}
