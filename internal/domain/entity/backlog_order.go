package entity

import "github.com/shopspring/decimal"

// DelayReason código de razón de atraso.
type DelayReason string

const (
	DelayQC   DelayReason = "QC"
	DelayRM   DelayReason = "RM"
	DelayCOM  DelayReason = "COM"
	DelayBLOQ DelayReason = "BLOQ"
	DelayPROD DelayReason = "PROD"
)

// Responsables de atraso.
const (
	OwnerQA         = "QA / Calidad"
	OwnerPlanning   = "Planning / Abastecimiento"
	OwnerCommercial = "Comercial / Key Account"
	OwnerWarehouse  = "Bodega / Inventarios"
	OwnerProduction = "Producción / Planta"
)

var defaultDelayOwner = map[DelayReason]string{
	DelayQC:   OwnerQA,
	DelayRM:   OwnerPlanning,
	DelayCOM:  OwnerCommercial,
	DelayBLOQ: OwnerWarehouse,
	DelayPROD: OwnerProduction,
}

// DefaultOwner responsable sugerido para la razón. ok=false si la razón no existe.
func (r DelayReason) DefaultOwner() (string, bool) {
	o, ok := defaultDelayOwner[r]
	return o, ok
}

// Valid indica si la razón es conocida.
func (r DelayReason) Valid() bool {
	_, ok := defaultDelayOwner[r]
	return ok
}

// ValidDelayOwner indica si owner es un responsable conocido.
func ValidDelayOwner(owner string) bool {
	for _, o := range defaultDelayOwner {
		if o == owner {
			return true
		}
	}
	return false
}

// DelayCommentMaxLen largo máximo del comentario de atraso.
const DelayCommentMaxLen = 120

// BacklogOrder pedido confirmado a la espera de despacho.
type BacklogOrder struct {
	ID          string `json:"id"`
	PI          string `json:"pi"`
	Customer    string `json:"customer"`
	Country     string `json:"country"`
	Destination string `json:"destination"`
	Product     string `json:"product"`
	Plant       string `json:"plant"`
	ETD         string `json:"etd"`           // YYYY-MM-DD
	ETA         string `json:"eta,omitempty"` // opcional; si falta se usa ETD+25 al despachar

	PendingKg     decimal.Decimal `json:"pendingKg"`
	PriceUsdPerKg decimal.Decimal `json:"priceUsdPerKg"`
	Priority      int             `json:"priority"` // 1 = más alta
	Commercial    string          `json:"commercial"`

	ShippingConsignee      string `json:"shippingConsignee,omitempty"`
	ShippingNotify         string `json:"shippingNotify,omitempty"`
	ShippingInstructionsOk bool   `json:"shippingInstructionsOk"`

	DelayReasonCode DelayReason `json:"delayReasonCode,omitempty"`
	DelayOwner      string      `json:"delayOwner,omitempty"`
	DelayComment    string      `json:"delayComment,omitempty"`

	AuditLog AuditLog `json:"auditLog,omitempty"`
}

// Clone copia profunda del pedido.
func (o BacklogOrder) Clone() BacklogOrder {
	out := o
	out.AuditLog = o.AuditLog.Clone()
	return out
}
