// Package lifecycle implementa las transiciones del ciclo de vida de un pedido:
// Solicitud → Pedido (backlog) → Embarque → Entregado.
//
// Cada transición es una función pura (estado, acción) → estado'. Las colecciones
// tocadas se reemplazan completas (copy-on-write); el estado de entrada nunca se
// modifica. El estado resultante informa qué colecciones cambiaron (Dirty) para que
// la capa de aplicación persista solo esas.
package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// Change colecciones modificadas por una transición.
type Change uint16

const (
	ChangedRequests Change = 1 << iota
	ChangedOrders
	ChangedShipments
	ChangedDelivered
	ChangedTargets
	ChangedClaims
	ChangedHistory
	ChangedFilters
)

// Has indica si c incluye x.
func (c Change) Has(x Change) bool { return c&x != 0 }

// State contenedor único de todas las colecciones de la consola.
type State struct {
	Requests  []entity.OrderRequest
	Orders    []entity.BacklogOrder
	Shipments []entity.Shipment
	Delivered []entity.DeliveredRecord
	Targets   entity.CommercialTargets
	Claims    []entity.Claim
	Filters   entity.GlobalFilters
	History   entity.AuditLog

	dirty Change
}

// Dirty colecciones cambiadas desde el último Clean.
func (s State) Dirty() Change { return s.dirty }

// Clean devuelve el mismo estado sin marcas de cambio.
func (s State) Clean() State {
	s.dirty = 0
	return s
}

func (s *State) mark(c Change) { s.dirty |= c }

// record agrega entradas a la bitácora global.
func (s *State) record(entries ...entity.AuditEntry) {
	for _, e := range entries {
		s.History = s.History.Append(e)
	}
	s.mark(ChangedHistory)
}

// IDGenerator fuente de identificadores.
type IDGenerator interface {
	RequestID() string
	ItemID() string
	AuditID() string
}

// UUIDGenerator genera IDs basados en UUID v4.
type UUIDGenerator struct{}

// RequestID REQ-XXXXXXXX.
func (UUIDGenerator) RequestID() string {
	return "REQ-" + strings.ToUpper(uuid.NewString()[:8])
}

// ItemID ITEM-<uuid>.
func (UUIDGenerator) ItemID() string { return "ITEM-" + uuid.NewString() }

// AuditID uuid.
func (UUIDGenerator) AuditID() string { return uuid.NewString() }

// Actores por defecto de la bitácora.
const (
	ActorUser         = "USER"
	ActorSalesSupport = "Sales Support"
)

// DefaultPlant planta asignada a pedidos creados desde una Solicitud.
const DefaultPlant = "QUELLON 10751"

// Env reloj, zona horaria e IDs inyectados en cada transición.
type Env struct {
	Now   time.Time
	Loc   *time.Location
	IDs   IDGenerator
	Actor string
	Plant string
}

func (e Env) loc() *time.Location {
	if e.Loc == nil {
		return time.UTC
	}
	return e.Loc
}

func (e Env) ids() IDGenerator {
	if e.IDs == nil {
		return UUIDGenerator{}
	}
	return e.IDs
}

func (e Env) actor() string {
	if e.Actor == "" {
		return ActorUser
	}
	return e.Actor
}

func (e Env) plant() string {
	if e.Plant == "" {
		return DefaultPlant
	}
	return e.Plant
}

// timestamp ISO en UTC con milisegundos.
func (e Env) timestamp() string {
	return e.Now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func (e Env) today() string {
	return derive.FormatDate(e.Now, e.loc())
}

func (e Env) audit(module, entityType, entityID, action, by, message string) entity.AuditEntry {
	if by == "" {
		by = e.actor()
	}
	return entity.AuditEntry{
		TS:         e.timestamp(),
		Module:     module,
		By:         by,
		Message:    message,
		ID:         e.ids().AuditID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
}

// Acciones registradas en la bitácora.
const (
	ActionCreated     = "CREATED"
	ActionUpdated     = "UPDATED"
	ActionStatus      = "STATUS"
	ActionDuplicated  = "DUPLICATED"
	ActionPIAssigned  = "PI_ASSIGNED"
	ActionDeleted     = "DELETED"
	ActionDispatched  = "DISPATCHED"
	ActionDocs        = "DOCS"
	ActionDelivered   = "DELIVERED"
	ActionClaimClosed = "CLOSED"
)

func indexOfRequest(rs []entity.OrderRequest, id string) int {
	for i := range rs {
		if rs[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfOrder(os []entity.BacklogOrder, id string) int {
	for i := range os {
		if os[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfShipment(ss []entity.Shipment, id string) int {
	for i := range ss {
		if ss[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfClaim(cs []entity.Claim, id string) int {
	for i := range cs {
		if cs[i].ID == id {
			return i
		}
	}
	return -1
}

// replaceAt copia s reemplazando el elemento i.
func replaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}

// removeAt copia s sin el elemento i.
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// prepend copia s con v al inicio.
func prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}
