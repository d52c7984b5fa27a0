package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// DefaultTransitDays días de tránsito usados cuando falta la ETA.
const DefaultTransitDays = 25

// DefaultBooking booking provisional de un embarque nuevo.
const DefaultBooking = "BK-000"

// NormalizePriorities devuelve una copia ordenada por prioridad (estable)
// y renumerada 1..N.
func NormalizePriorities(orders []entity.BacklogOrder) []entity.BacklogOrder {
	out := make([]entity.BacklogOrder, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	for i := range out {
		out[i].Priority = i + 1
	}
	return out
}

// MoveToPriority mueve el pedido a la posición target (acotada a [1, N])
// y renumera todo el backlog.
func MoveToPriority(s State, orderID string, target int) (State, error) {
	orders := NormalizePriorities(s.Orders)
	idx := indexOfOrder(orders, orderID)
	if idx < 0 {
		return s, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	moved := orders[idx]
	rest := removeAt(orders, idx)

	n := len(orders)
	if target < 1 {
		target = 1
	}
	if target > n {
		target = n
	}
	pos := target - 1

	out := make([]entity.BacklogOrder, 0, n)
	out = append(out, rest[:pos]...)
	out = append(out, moved)
	out = append(out, rest[pos:]...)
	for i := range out {
		out[i].Priority = i + 1
	}

	s.Orders = out
	s.mark(ChangedOrders)
	return s, nil
}

// UpdateShipping edita consignee/notify y recalcula el flag OK.
func UpdateShipping(s State, env Env, orderID string, consignee, notify *string) (State, error) {
	i := indexOfOrder(s.Orders, orderID)
	if i < 0 {
		return s, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	next := s.Orders[i].Clone()
	changes := map[string]entity.FieldChange{}
	if consignee != nil && *consignee != next.ShippingConsignee {
		changes["shippingConsignee"] = entity.FieldChange{From: next.ShippingConsignee, To: *consignee}
		next.ShippingConsignee = *consignee
	}
	if notify != nil && *notify != next.ShippingNotify {
		changes["shippingNotify"] = entity.FieldChange{From: next.ShippingNotify, To: *notify}
		next.ShippingNotify = *notify
	}
	next.ShippingInstructionsOk = derive.ShippingInstructionsOK(next.ShippingConsignee, next.ShippingNotify)
	if len(changes) == 0 {
		return s, nil
	}

	status := "PENDIENTE"
	if next.ShippingInstructionsOk {
		status = "OK"
	}
	entry := env.audit(entity.ModuleOrders, entity.AuditEntityOrder, next.ID, ActionUpdated, "",
		fmt.Sprintf("Shipping Instructions actualizadas (%s).", status))
	entry.Changes = changes
	next.AuditLog = next.AuditLog.Append(entry)

	s.Orders = replaceAt(s.Orders, i, next)
	s.mark(ChangedOrders)
	s.record(entry)
	return s, nil
}

// DelayPatch edición del seguimiento de atraso. Cadena vacía limpia el campo.
type DelayPatch struct {
	Reason  *entity.DelayReason
	Owner   *string
	Comment *string
}

// UpdateDelay edita razón, responsable y comentario de atraso.
// Una razón sin responsable explícito toma el responsable por defecto de esa razón.
func UpdateDelay(s State, env Env, orderID string, patch DelayPatch) (State, error) {
	i := indexOfOrder(s.Orders, orderID)
	if i < 0 {
		return s, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	next := s.Orders[i].Clone()
	changes := map[string]entity.FieldChange{}

	if patch.Reason != nil {
		r := *patch.Reason
		if r != "" && !r.Valid() {
			return s, fmt.Errorf("razón de atraso %q: %w", r, domain.ErrInvalidInput)
		}
		if r != next.DelayReasonCode {
			changes["delayReasonCode"] = entity.FieldChange{From: next.DelayReasonCode, To: r}
			next.DelayReasonCode = r
		}
		if r != "" && patch.Owner == nil {
			owner, _ := r.DefaultOwner()
			if owner != next.DelayOwner {
				changes["delayOwner"] = entity.FieldChange{From: next.DelayOwner, To: owner}
				next.DelayOwner = owner
			}
		}
	}
	if patch.Owner != nil {
		o := *patch.Owner
		if o != "" && !entity.ValidDelayOwner(o) {
			return s, fmt.Errorf("responsable de atraso %q: %w", o, domain.ErrInvalidInput)
		}
		if o != next.DelayOwner {
			changes["delayOwner"] = entity.FieldChange{From: next.DelayOwner, To: o}
			next.DelayOwner = o
		}
	}
	if patch.Comment != nil {
		c := truncateRunes(strings.TrimSpace(*patch.Comment), entity.DelayCommentMaxLen)
		if c != next.DelayComment {
			changes["delayComment"] = entity.FieldChange{From: next.DelayComment, To: c}
			next.DelayComment = c
		}
	}
	if len(changes) == 0 {
		return s, nil
	}

	entry := env.audit(entity.ModuleOrders, entity.AuditEntityOrder, next.ID, ActionUpdated, "",
		fmt.Sprintf("Atraso actualizado: %s / %s.", orDash(string(next.DelayReasonCode)), orDash(next.DelayOwner)))
	entry.Changes = changes
	next.AuditLog = next.AuditLog.Append(entry)

	s.Orders = replaceAt(s.Orders, i, next)
	s.mark(ChangedOrders)
	s.record(entry)
	return s, nil
}

// CanDispatch un pedido en rojo solo se despacha con razón y responsable de atraso.
func CanDispatch(o entity.BacklogOrder, now time.Time, loc *time.Location) bool {
	if derive.ETDRiskBucket(o.ETD, now, loc) != derive.RiskRed {
		return true
	}
	return o.DelayReasonCode != "" && strings.TrimSpace(o.DelayOwner) != ""
}

// Dispatch mueve el pedido a Tránsito: se elimina del backlog y el embarque
// SHP-<id> se agrega al inicio de Shipments. Las prioridades restantes se renumeran.
func Dispatch(s State, env Env, orderID string) (State, error) {
	i := indexOfOrder(s.Orders, orderID)
	if i < 0 {
		return s, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	order := s.Orders[i]
	if !CanDispatch(order, env.Now, env.loc()) {
		return s, fmt.Errorf("despachar %s: %w", orderID, domain.ErrDispatchBlocked)
	}

	sh := ShipmentFromOrder(env, order)
	entry := env.audit(entity.ModuleShipments, entity.AuditEntityShipment, sh.ID, ActionDispatched, "",
		fmt.Sprintf("Pedido %s despachado a Tránsito.", order.ID))
	sh.AuditLog = sh.AuditLog.Append(entry)

	s.Orders = NormalizePriorities(removeAt(s.Orders, i))
	s.Shipments = prepend(s.Shipments, sh)
	s.mark(ChangedOrders | ChangedShipments)
	s.record(entry)
	return s, nil
}

// ShipmentFromOrder embarque derivado de un pedido. La ETA es la del pedido,
// o ETD+25 días, o hoy+25 días si la ETD no se puede interpretar.
func ShipmentFromOrder(env Env, o entity.BacklogOrder) entity.Shipment {
	eta := o.ETA
	if _, ok := derive.ParseDate(eta, env.loc()); !ok {
		eta = derive.AddDays(o.ETD, DefaultTransitDays, env.loc())
	}
	if eta == "" {
		eta = derive.FormatDate(env.Now.AddDate(0, 0, DefaultTransitDays), env.loc())
	}
	price := o.PriceUsdPerKg
	return entity.Shipment{
		ID:            "SHP-" + o.ID,
		OrderID:       o.ID,
		PI:            o.PI,
		Customer:      o.Customer,
		Country:       o.Country,
		Destination:   o.Destination,
		Product:       o.Product,
		Booking:       DefaultBooking,
		ETD:           o.ETD,
		ETA:           eta,
		DocsStatus:    entity.DocsPending,
		ShippedKg:     o.PendingKg,
		Specie:        derive.DeriveSpecie(o.Product),
		Market:        o.Country,
		PriceUsdPerKg: &price,
		AuditLog:      o.AuditLog.Clone(),
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
