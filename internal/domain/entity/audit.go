package entity

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y precios viajan como números JSON, igual que el formato persistido.
	decimal.MarshalJSONWithoutQuotes = true
}

// Módulos que escriben en la bitácora.
const (
	ModuleRequests  = "REQUESTS"
	ModuleOrders    = "ORDERS"
	ModuleShipments = "SHIPMENTS"
	ModuleDelivered = "DELIVERED"
	ModuleClaims    = "CLAIMS"
)

// Tipos de entidad referenciados por una entrada de bitácora.
const (
	AuditEntityRequest  = "REQUEST"
	AuditEntityOrder    = "ORDER"
	AuditEntityShipment = "SHIPMENT"
	AuditEntityClaim    = "CLAIM"
)

// FieldChange valor anterior y nuevo de un campo editado.
type FieldChange struct {
	From any `json:"from,omitempty"`
	To   any `json:"to,omitempty"`
}

// AuditEntry entrada de bitácora. Una vez escrita no se modifica.
type AuditEntry struct {
	TS      string `json:"ts"`
	Module  string `json:"module"`
	By      string `json:"by,omitempty"`
	Message string `json:"message"`

	ID         string                 `json:"id,omitempty"`
	EntityType string                 `json:"entityType,omitempty"`
	EntityID   string                 `json:"entityId,omitempty"`
	Action     string                 `json:"action,omitempty"`
	Note       string                 `json:"note,omitempty"`
	Changes    map[string]FieldChange `json:"changes,omitempty"`
}

// AuditLog bitácora append-only.
type AuditLog []AuditEntry

// Append devuelve una bitácora nueva con e al final; la original no se toca.
func (l AuditLog) Append(e AuditEntry) AuditLog {
	out := make(AuditLog, len(l), len(l)+1)
	copy(out, l)
	return append(out, e)
}

// Clone copia superficial de las entradas (las entradas son inmutables).
func (l AuditLog) Clone() AuditLog {
	if l == nil {
		return nil
	}
	out := make(AuditLog, len(l))
	copy(out, l)
	return out
}
