package lifecycle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// ToggleDocs avanza un paso el estado de documentos.
func ToggleDocs(s State, env Env, shipmentID string) (State, error) {
	i := indexOfShipment(s.Shipments, shipmentID)
	if i < 0 {
		return s, fmt.Errorf("embarque %s: %w", shipmentID, domain.ErrNotFound)
	}
	next := s.Shipments[i].Clone()
	prev := next.DocsStatus
	next.DocsStatus = prev.Next()

	entry := env.audit(entity.ModuleShipments, entity.AuditEntityShipment, next.ID, ActionDocs, "",
		fmt.Sprintf("Docs Status actualizado → %s.", next.DocsStatus.Label()))
	entry.Changes = map[string]entity.FieldChange{"docsStatus": {From: prev, To: next.DocsStatus}}
	next.AuditLog = next.AuditLog.Append(entry)

	s.Shipments = replaceAt(s.Shipments, i, next)
	s.mark(ChangedShipments)
	s.record(entry)
	return s, nil
}

// ShipmentPatch edición parcial de un embarque.
type ShipmentPatch struct {
	Booking        *string
	ETD            *string
	ETA            *string
	PriceUsdPerKg  *decimal.Decimal
	MarginUsdPerKg *decimal.Decimal
}

// UpdateShipment edita booking, fechas, precio y margen. Las fechas deben ser ISO válidas.
func UpdateShipment(s State, env Env, shipmentID string, patch ShipmentPatch, message string) (State, error) {
	i := indexOfShipment(s.Shipments, shipmentID)
	if i < 0 {
		return s, fmt.Errorf("embarque %s: %w", shipmentID, domain.ErrNotFound)
	}
	next := s.Shipments[i].Clone()
	changes := map[string]entity.FieldChange{}

	if patch.Booking != nil {
		if b := strings.TrimSpace(*patch.Booking); b != next.Booking {
			changes["booking"] = entity.FieldChange{From: next.Booking, To: b}
			next.Booking = b
		}
	}
	for _, d := range []struct {
		name string
		dst  *string
		v    *string
	}{{"etd", &next.ETD, patch.ETD}, {"eta", &next.ETA, patch.ETA}} {
		if d.v == nil || *d.v == *d.dst {
			continue
		}
		if *d.v != "" {
			if _, ok := derive.ParseDate(*d.v, env.loc()); !ok {
				return s, fmt.Errorf("%s %q: %w", d.name, *d.v, domain.ErrInvalidInput)
			}
		}
		changes[d.name] = entity.FieldChange{From: *d.dst, To: *d.v}
		*d.dst = *d.v
	}
	if patch.PriceUsdPerKg != nil {
		if patch.PriceUsdPerKg.IsNegative() {
			return s, fmt.Errorf("precio negativo: %w", domain.ErrInvalidInput)
		}
		p := *patch.PriceUsdPerKg
		changes["priceUsdPerKg"] = entity.FieldChange{From: next.PriceUsdPerKg, To: p}
		next.PriceUsdPerKg = &p
	}
	if patch.MarginUsdPerKg != nil {
		m := *patch.MarginUsdPerKg
		changes["marginUsdPerKg"] = entity.FieldChange{From: next.MarginUsdPerKg, To: m}
		next.MarginUsdPerKg = &m
	}
	if len(changes) == 0 {
		return s, nil
	}

	if message == "" {
		keys := make([]string, 0, len(changes))
		for k := range changes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		message = "Campos actualizados: " + strings.Join(keys, ", ") + "."
	}
	entry := env.audit(entity.ModuleShipments, entity.AuditEntityShipment, next.ID, ActionUpdated, "", message)
	entry.Changes = changes
	next.AuditLog = next.AuditLog.Append(entry)

	s.Shipments = replaceAt(s.Shipments, i, next)
	s.mark(ChangedShipments)
	s.record(entry)
	return s, nil
}

// ConfirmDelivered mueve el embarque a Entregados con deliveredAt = ahora.
// Un embarque inexistente no cambia nada.
func ConfirmDelivered(s State, env Env, shipmentID string) (State, bool) {
	i := indexOfShipment(s.Shipments, shipmentID)
	if i < 0 {
		return s, false
	}
	sh := s.Shipments[i].Clone()
	entry := env.audit(entity.ModuleDelivered, entity.AuditEntityShipment, sh.ID, ActionDelivered, "", "Entrega confirmada.")
	sh.AuditLog = sh.AuditLog.Append(entry)

	rec := entity.DeliveredRecord{Shipment: sh, DeliveredAt: env.timestamp()}
	s.Delivered = prepend(s.Delivered, rec)
	s.Shipments = removeAt(s.Shipments, i)
	s.mark(ChangedShipments | ChangedDelivered)
	s.record(entry)
	return s, true
}
