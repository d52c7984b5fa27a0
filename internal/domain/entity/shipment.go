package entity

import "github.com/shopspring/decimal"

// DocsStatus estado de documentos de un embarque.
type DocsStatus string

const (
	DocsPending   DocsStatus = "PEND"
	DocsDraftSent DocsStatus = "DRAFT ENVIADO"
	DocsOK        DocsStatus = "OK"
)

// Next avanza un paso en el ciclo PEND → DRAFT ENVIADO → OK → PEND.
// Un valor desconocido vuelve a PEND.
func (s DocsStatus) Next() DocsStatus {
	switch s {
	case DocsPending:
		return DocsDraftSent
	case DocsDraftSent:
		return DocsOK
	default:
		return DocsPending
	}
}

// Label texto visible del estado.
func (s DocsStatus) Label() string {
	if s == DocsPending {
		return "PENDIENTE"
	}
	return string(s)
}

// Specie clasificación de especie.
type Specie string

const (
	SpecieAtlantic Specie = "ATLANTIC"
	SpecieCoho     Specie = "COHO"
	SpecieOther    Specie = "OTHER"
)

// Shipment pedido en tránsito.
type Shipment struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	PI          string `json:"pi,omitempty"`
	Customer    string `json:"customer"`
	Country     string `json:"country"`
	Destination string `json:"destination"`
	Product     string `json:"product"`

	Booking string `json:"booking"`
	ETD     string `json:"etd"`
	ETA     string `json:"eta"`

	DocsStatus DocsStatus      `json:"docsStatus"`
	ShippedKg  decimal.Decimal `json:"shippedKg"`

	Specie         Specie           `json:"specie,omitempty"`
	Market         string           `json:"market,omitempty"`
	PriceUsdPerKg  *decimal.Decimal `json:"priceUsdPerKg,omitempty"`
	MarginUsdPerKg *decimal.Decimal `json:"marginUsdPerKg,omitempty"`

	AuditLog AuditLog `json:"auditLog,omitempty"`
}

// Clone copia profunda del embarque.
func (s Shipment) Clone() Shipment {
	out := s
	if s.PriceUsdPerKg != nil {
		p := *s.PriceUsdPerKg
		out.PriceUsdPerKg = &p
	}
	if s.MarginUsdPerKg != nil {
		m := *s.MarginUsdPerKg
		out.MarginUsdPerKg = &m
	}
	out.AuditLog = s.AuditLog.Clone()
	return out
}

// DeliveredRecord embarque entregado. Inmutable; solo alimenta los KPI.
type DeliveredRecord struct {
	Shipment
	DeliveredAt string `json:"deliveredAt"`
}

// Clone copia profunda del registro.
func (d DeliveredRecord) Clone() DeliveredRecord {
	return DeliveredRecord{Shipment: d.Shipment.Clone(), DeliveredAt: d.DeliveredAt}
}
