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

// DefaultItemVolumeKg volumen sugerido de una línea nueva.
var DefaultItemVolumeKg = decimal.NewFromInt(20000)

// DefaultPaymentMethod forma de pago sugerida.
const DefaultPaymentMethod = "Payment Against Docs."

// NewItem línea vacía con los valores por defecto.
func NewItem(env Env) entity.RequestItem {
	return entity.RequestItem{
		ID:      env.ids().ItemID(),
		Quality: "Premium",
		Price:   entity.Price{Value: decimal.Zero, UOM: entity.UOMKg},
		Volume:  entity.Volume{Value: DefaultItemVolumeKg, UOM: entity.UOMKg},
	}
}

// NewRequestTemplate Solicitud en BORRADOR lista para editar. No se agrega al estado.
func NewRequestTemplate(env Env, requester string) entity.OrderRequest {
	ts := env.timestamp()
	id := env.ids().RequestID()
	return entity.OrderRequest{
		ID:                         id,
		CreatedAt:                  ts,
		UpdatedAt:                  ts,
		Requester:                  requester,
		Incoterm:                   entity.IncotermCFR,
		ShipmentEtdMonth:           derive.PeriodOf(env.Now, env.loc()),
		PaymentMethod:              DefaultPaymentMethod,
		Certifications:             []string{entity.CertNA},
		Inspection:                 true,
		ShippingInstructionsStatus: entity.ShippingPending,
		AdditionalLabel:            "NO",
		Items:                      []entity.RequestItem{NewItem(env)},
		Status:                     entity.RequestDraft,
		AuditLog: entity.AuditLog{
			env.audit(entity.ModuleRequests, entity.AuditEntityRequest, id, ActionCreated, requester, "Solicitud creada (BORRADOR)."),
		},
	}
}

// SaveRequest guarda una Solicitud como BORRADOR o ENVIADA al inicio de la bandeja.
// Si ya existe una Solicitud con el mismo ID se reemplaza.
func SaveRequest(s State, env Env, req entity.OrderRequest, status entity.RequestStatus) (State, error) {
	if status != entity.RequestDraft && status != entity.RequestSent {
		return s, fmt.Errorf("guardar solicitud con estado %q: %w", status, domain.ErrInvalidStatus)
	}
	if err := validateRequest(req, status == entity.RequestSent); err != nil {
		return s, err
	}

	clean := req.Clone()
	if clean.ID == "" {
		clean.ID = env.ids().RequestID()
	}
	if clean.CreatedAt == "" {
		clean.CreatedAt = env.timestamp()
	}
	for i := range clean.Items {
		clean.Items[i] = normalizeItem(env, clean.Items[i])
	}
	clean.Status = status
	clean.UpdatedAt = env.timestamp()
	clean.ShippingInstructionsStatus = derive.ShippingStatus(clean.Consignee, clean.Notify)

	msg := "Guardado como BORRADOR."
	if status == entity.RequestSent {
		msg = "Enviada a Sales Support (ENVIADA)."
	}
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, clean.ID, ActionCreated, clean.Requester, msg)
	clean.AuditLog = clean.AuditLog.Append(entry)

	rest := s.Requests
	if i := indexOfRequest(rest, clean.ID); i >= 0 {
		rest = removeAt(rest, i)
	}
	s.Requests = prepend(rest, clean)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, nil
}

// RequestPatch edición parcial de una Solicitud; nil = sin cambio.
type RequestPatch struct {
	Client                 *string
	Consignee              *string
	Notify                 *string
	Incoterm               *string
	Destination            *string
	ShipmentEtdMonth       *string
	PaymentMethod          *string
	Certifications         *[]string
	Inspection             *bool
	AdditionalLabel        *string
	AdditionalRequirements *string
	Comments               *string
	Items                  *[]entity.RequestItem
	ERP                    *entity.ERPRefs
}

// UpdateRequest aplica patch, refresca updatedAt, rederiva el estado de instrucciones
// y agrega una entrada de bitácora. Sin message se listan los campos cambiados.
func UpdateRequest(s State, env Env, id string, patch RequestPatch, message string) (State, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	next := s.Requests[i].Clone()
	changes := map[string]entity.FieldChange{}

	setStr := func(name string, dst *string, v *string) {
		if v == nil || *dst == *v {
			return
		}
		changes[name] = entity.FieldChange{From: *dst, To: *v}
		*dst = *v
	}
	setStr("client", &next.Client, patch.Client)
	setStr("consignee", &next.Consignee, patch.Consignee)
	setStr("notify", &next.Notify, patch.Notify)
	setStr("incoterm", &next.Incoterm, patch.Incoterm)
	setStr("destination", &next.Destination, patch.Destination)
	setStr("shipmentEtdMonth", &next.ShipmentEtdMonth, patch.ShipmentEtdMonth)
	setStr("paymentMethod", &next.PaymentMethod, patch.PaymentMethod)
	setStr("additionalLabel", &next.AdditionalLabel, patch.AdditionalLabel)
	setStr("additionalRequirements", &next.AdditionalRequirements, patch.AdditionalRequirements)
	setStr("comments", &next.Comments, patch.Comments)

	if patch.Certifications != nil {
		changes["certifications"] = entity.FieldChange{From: next.Certifications, To: *patch.Certifications}
		next.Certifications = append([]string(nil), (*patch.Certifications)...)
	}
	if patch.Inspection != nil && *patch.Inspection != next.Inspection {
		changes["inspection"] = entity.FieldChange{From: next.Inspection, To: *patch.Inspection}
		next.Inspection = *patch.Inspection
	}
	if patch.Items != nil {
		items := make([]entity.RequestItem, 0, len(*patch.Items))
		for _, it := range *patch.Items {
			items = append(items, normalizeItem(env, it))
		}
		changes["items"] = entity.FieldChange{From: len(next.Items), To: len(items)}
		next.Items = items
	}
	if patch.ERP != nil {
		erp := *patch.ERP
		changes["erp"] = entity.FieldChange{To: erp}
		next.ERP = &erp
	}

	if err := validateRequest(next, false); err != nil {
		return s, err
	}

	next.UpdatedAt = env.timestamp()
	next.ShippingInstructionsStatus = derive.ShippingStatus(next.Consignee, next.Notify)

	if message == "" {
		if len(changes) == 0 {
			s.Requests = replaceAt(s.Requests, i, next)
			s.mark(ChangedRequests)
			return s, nil
		}
		message = "Campos actualizados: " + strings.Join(sortedKeys(changes), ", ") + "."
	}
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, next.ID, ActionUpdated, next.Requester, message)
	if len(changes) > 0 {
		entry.Changes = changes
	}
	next.AuditLog = next.AuditLog.Append(entry)

	s.Requests = replaceAt(s.Requests, i, next)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, nil
}

// SetRequestStatus cambia el estado manualmente. PI CREADA solo se alcanza con AssignPI.
func SetRequestStatus(s State, env Env, id string, status entity.RequestStatus) (State, error) {
	if !status.Valid() || status == entity.RequestPIAssigned {
		return s, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidStatus)
	}
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	cur := s.Requests[i]
	if cur.Status == status {
		return s, nil
	}
	next := cur.Clone()
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, id, ActionStatus, "",
		fmt.Sprintf("Estado actualizado → %s.", status))
	entry.Changes = map[string]entity.FieldChange{"status": {From: cur.Status, To: status}}
	next.Status = status
	next.UpdatedAt = env.timestamp()
	next.AuditLog = next.AuditLog.Append(entry)

	s.Requests = replaceAt(s.Requests, i, next)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, nil
}

// AddRequestItem agrega una línea (vacía si item es nil).
func AddRequestItem(s State, env Env, id string, item *entity.RequestItem) (State, string, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, "", fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	it := NewItem(env)
	if item != nil {
		it = normalizeItem(env, *item)
	}
	if err := validateItem(it); err != nil {
		return s, "", err
	}
	next := s.Requests[i].Clone()
	next.Items = append(next.Items, it)
	next.UpdatedAt = env.timestamp()
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, id, ActionUpdated, next.Requester, "Se agregó una línea de ítem.")
	next.AuditLog = next.AuditLog.Append(entry)

	s.Requests = replaceAt(s.Requests, i, next)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, it.ID, nil
}

// ItemPatch edición parcial de una línea.
type ItemPatch struct {
	Product *string
	Quality *string
	Size    *string
	Price   *entity.Price
	Volume  *decimal.Decimal
}

// UpdateRequestItem edita una línea. Solo refresca updatedAt; no escribe bitácora.
func UpdateRequestItem(s State, env Env, id, itemID string, patch ItemPatch) (State, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	next := s.Requests[i].Clone()
	j := -1
	for k := range next.Items {
		if next.Items[k].ID == itemID {
			j = k
			break
		}
	}
	if j < 0 {
		return s, fmt.Errorf("línea %s: %w", itemID, domain.ErrNotFound)
	}
	it := next.Items[j]
	if patch.Product != nil {
		it.Product = *patch.Product
	}
	if patch.Quality != nil {
		it.Quality = *patch.Quality
	}
	if patch.Size != nil {
		it.Size = *patch.Size
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	if patch.Volume != nil {
		it.Volume.Value = *patch.Volume
	}
	it = normalizeItem(env, it)
	if err := validateItem(it); err != nil {
		return s, err
	}
	next.Items[j] = it
	next.UpdatedAt = env.timestamp()

	s.Requests = replaceAt(s.Requests, i, next)
	s.mark(ChangedRequests)
	return s, nil
}

// RemoveRequestItem elimina una línea.
func RemoveRequestItem(s State, env Env, id, itemID string) (State, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	next := s.Requests[i].Clone()
	items := make([]entity.RequestItem, 0, len(next.Items))
	for _, it := range next.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	if len(items) == len(next.Items) {
		return s, fmt.Errorf("línea %s: %w", itemID, domain.ErrNotFound)
	}
	next.Items = items
	next.UpdatedAt = env.timestamp()
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, id, ActionUpdated, next.Requester, "Se eliminó una línea de ítem.")
	next.AuditLog = next.AuditLog.Append(entry)

	s.Requests = replaceAt(s.Requests, i, next)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, nil
}

// DeleteRequest elimina una Solicitud de la bandeja.
func DeleteRequest(s State, env Env, id string) (State, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, id, ActionDeleted, "", "Solicitud eliminada.")
	s.Requests = removeAt(s.Requests, i)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, nil
}

// DuplicateRequest crea una Solicitud nueva en BORRADOR a partir de id.
// Se copian todos los campos salvo ID, PI y referencias ERP; las líneas reciben IDs nuevos.
func DuplicateRequest(s State, env Env, id string) (State, string, error) {
	i := indexOfRequest(s.Requests, id)
	if i < 0 {
		return s, "", fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	src := s.Requests[i]
	draft := src.Clone()
	draft.ID = env.ids().RequestID()
	draft.CreatedAt = env.timestamp()
	draft.UpdatedAt = draft.CreatedAt
	draft.Status = entity.RequestDraft
	draft.PI = ""
	draft.ERP = nil

	draft.Items = make([]entity.RequestItem, 0, len(src.Items))
	for _, it := range src.Items {
		it.ID = env.ids().ItemID()
		draft.Items = append(draft.Items, it)
	}
	if len(draft.Items) == 0 {
		draft.Items = []entity.RequestItem{NewItem(env)}
	}
	draft.ShippingInstructionsStatus = derive.ShippingStatus(draft.Consignee, draft.Notify)

	entry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, draft.ID, ActionDuplicated, draft.Requester,
		fmt.Sprintf("Duplicada desde %s → nueva Solicitud (BORRADOR).", src.ID))
	draft.AuditLog = draft.AuditLog.Append(entry)

	s.Requests = prepend(s.Requests, draft)
	s.mark(ChangedRequests)
	s.record(entry)
	return s, draft.ID, nil
}

// AssignPI convierte la Solicitud en un Pedido del backlog.
//
// El PI se valida antes de tocar el estado. La Solicitud se consume (se elimina de
// Requests) y se crea ORD-<id>; si ese pedido ya existe no se crea otro. El pedido
// nuevo entra al final de la prioridad (N+1) tras renormalizar el backlog.
func AssignPI(s State, env Env, requestID, pi string) (State, error) {
	piValue, err := derive.ValidatePI(pi)
	if err != nil {
		return s, err
	}
	i := indexOfRequest(s.Requests, requestID)
	if i < 0 {
		return s, fmt.Errorf("solicitud %s: %w", requestID, domain.ErrNotFound)
	}
	req := s.Requests[i].Clone()
	req.PI = piValue
	req.Status = entity.RequestPIAssigned
	req.UpdatedAt = env.timestamp()
	req.ShippingInstructionsStatus = derive.ShippingStatus(req.Consignee, req.Notify)
	reqEntry := env.audit(entity.ModuleRequests, entity.AuditEntityRequest, req.ID, ActionPIAssigned, ActorSalesSupport,
		fmt.Sprintf("PI asignada: %s. Solicitud convertida a Pedido.", piValue))

	s.Requests = removeAt(s.Requests, i)
	s.mark(ChangedRequests)

	orderID := "ORD-" + req.ID
	if indexOfOrder(s.Orders, orderID) >= 0 {
		s.record(reqEntry)
		return s, nil
	}

	order := OrderFromRequest(env, req)
	orderEntry := env.audit(entity.ModuleOrders, entity.AuditEntityOrder, order.ID, ActionCreated, ActorSalesSupport,
		fmt.Sprintf("Pedido creado desde %s (PI %s).", req.ID, piValue))
	order.AuditLog = order.AuditLog.Append(orderEntry)

	orders := NormalizePriorities(s.Orders)
	order.Priority = len(orders) + 1
	s.Orders = append(orders, order)
	s.mark(ChangedOrders)
	s.record(reqEntry, orderEntry)
	return s, nil
}

// OrderFromRequest construye el pedido derivado de una Solicitud con PI.
// La prioridad queda en cero; la asigna quien lo inserta en el backlog.
func OrderFromRequest(env Env, req entity.OrderRequest) entity.BacklogOrder {
	return entity.BacklogOrder{
		ID:                     "ORD-" + req.ID,
		PI:                     req.PI,
		Customer:               req.Client,
		Country:                derive.GuessCountry(req.Destination),
		Destination:            req.Incoterm + " " + req.Destination,
		Product:                derive.ProductSummary(req.Items),
		Plant:                  env.plant(),
		ETD:                    derive.MonthToISODate(req.ShipmentEtdMonth),
		PendingKg:              req.TotalVolumeKg(),
		PriceUsdPerKg:          derive.WeightedAvgPriceUsdPerKg(req.Items),
		Commercial:             req.Requester,
		ShippingConsignee:      req.Consignee,
		ShippingNotify:         req.Notify,
		ShippingInstructionsOk: derive.ShippingInstructionsOK(req.Consignee, req.Notify),
	}
}

func normalizeItem(env Env, it entity.RequestItem) entity.RequestItem {
	if it.ID == "" {
		it.ID = env.ids().ItemID()
	}
	if it.Price.UOM == "" {
		it.Price.UOM = entity.UOMKg
	}
	it.Volume.UOM = entity.UOMKg
	return it
}

func validateItem(it entity.RequestItem) error {
	if it.Price.UOM != "" && it.Price.UOM != entity.UOMKg && it.Price.UOM != entity.UOMLb {
		return fmt.Errorf("unidad de precio %q: %w", it.Price.UOM, domain.ErrInvalidInput)
	}
	if it.Price.Value.IsNegative() || it.Volume.Value.IsNegative() {
		return fmt.Errorf("precio y volumen no pueden ser negativos: %w", domain.ErrInvalidInput)
	}
	return nil
}

func validateRequest(r entity.OrderRequest, submitting bool) error {
	switch r.Incoterm {
	case entity.IncotermCFR, entity.IncotermFOB, entity.IncotermCIF:
	default:
		return fmt.Errorf("incoterm %q: %w", r.Incoterm, domain.ErrInvalidInput)
	}
	if r.ShipmentEtdMonth != "" && !derive.ValidPeriod(r.ShipmentEtdMonth) {
		return fmt.Errorf("mes ETD %q: %w", r.ShipmentEtdMonth, domain.ErrInvalidInput)
	}
	if r.AdditionalLabel != "" && r.AdditionalLabel != "YES" && r.AdditionalLabel != "NO" {
		return fmt.Errorf("additionalLabel %q: %w", r.AdditionalLabel, domain.ErrInvalidInput)
	}
	for _, it := range r.Items {
		if err := validateItem(it); err != nil {
			return err
		}
	}
	if submitting {
		if strings.TrimSpace(r.Client) == "" || strings.TrimSpace(r.Destination) == "" {
			return fmt.Errorf("cliente y destino son obligatorios: %w", domain.ErrInvalidInput)
		}
		if len(r.Items) == 0 {
			return fmt.Errorf("la solicitud no tiene líneas: %w", domain.ErrInvalidInput)
		}
	}
	return nil
}

func sortedKeys(m map[string]entity.FieldChange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
