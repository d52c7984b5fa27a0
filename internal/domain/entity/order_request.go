package entity

import "github.com/shopspring/decimal"

// RequestStatus estado de una Solicitud de pedido.
type RequestStatus string

const (
	RequestDraft      RequestStatus = "BORRADOR"
	RequestSent       RequestStatus = "ENVIADA"
	RequestInReview   RequestStatus = "EN_REVISION"
	RequestFlagged    RequestStatus = "OBSERVADA"
	RequestRejected   RequestStatus = "RECHAZADA"
	RequestPIAssigned RequestStatus = "PI CREADA"
	RequestERPCreated RequestStatus = "CREADA_EN_ERP"
)

// Valid indica si s es uno de los estados conocidos.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestDraft, RequestSent, RequestInReview, RequestFlagged,
		RequestRejected, RequestPIAssigned, RequestERPCreated:
		return true
	}
	return false
}

// ShippingStatus estado derivado de las instrucciones de embarque.
type ShippingStatus string

const (
	ShippingOK      ShippingStatus = "OK"
	ShippingPending ShippingStatus = "PENDIENTE"
)

// Incoterms aceptados.
const (
	IncotermCFR = "CFR"
	IncotermFOB = "FOB"
	IncotermCIF = "CIF"
)

// Unidades de precio.
const (
	UOMKg = "kg"
	UOMLb = "lb"
)

// Certificaciones.
const (
	CertNA   = "N/A"
	CertASC  = "ASC"
	CertBAP4 = "BAP4"
	CertABF  = "ABF"
)

// Price precio de una línea en USD por unidad.
type Price struct {
	Value decimal.Decimal `json:"value"`
	UOM   string          `json:"uom"`
}

// Volume volumen de una línea; siempre en kg.
type Volume struct {
	Value decimal.Decimal `json:"value"`
	UOM   string          `json:"uom"`
}

// RequestItem línea de producto de una Solicitud.
type RequestItem struct {
	ID      string `json:"id"`
	Product string `json:"product"`
	Quality string `json:"quality"`
	Size    string `json:"size"`
	Price   Price  `json:"price"`
	Volume  Volume `json:"volume"`
}

// ERPRefs referencias del ERP una vez creada la orden.
type ERPRefs struct {
	PI       string `json:"pi,omitempty"`
	OV       string `json:"ov,omitempty"`
	Despacho string `json:"despacho,omitempty"`
}

// OrderRequest Solicitud comercial previa a la asignación de PI.
type OrderRequest struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Requester string `json:"requester"`

	Client    string `json:"client"`
	Consignee string `json:"consignee,omitempty"`
	Notify    string `json:"notify,omitempty"`

	Incoterm         string `json:"incoterm"`
	Destination      string `json:"destination"`
	ShipmentEtdMonth string `json:"shipmentEtdMonth"` // YYYY-MM

	PaymentMethod  string   `json:"paymentMethod"`
	Certifications []string `json:"certifications"`
	Inspection     bool     `json:"inspection"`

	// Derivado de Consignee/Notify; nunca se asigna por separado.
	ShippingInstructionsStatus ShippingStatus `json:"shippingInstructionsStatus"`

	AdditionalLabel        string `json:"additionalLabel"` // YES | NO
	AdditionalRequirements string `json:"additionalRequirements,omitempty"`

	Items    []RequestItem `json:"items"`
	Comments string        `json:"comments,omitempty"`

	PI  string   `json:"pi,omitempty"`
	ERP *ERPRefs `json:"erp,omitempty"`

	Status   RequestStatus `json:"status"`
	AuditLog AuditLog      `json:"auditLog,omitempty"`
}

// Clone copia profunda de la Solicitud.
func (r OrderRequest) Clone() OrderRequest {
	out := r
	if r.Certifications != nil {
		out.Certifications = append([]string(nil), r.Certifications...)
	}
	if r.Items != nil {
		out.Items = append([]RequestItem(nil), r.Items...)
	}
	if r.ERP != nil {
		erp := *r.ERP
		out.ERP = &erp
	}
	out.AuditLog = r.AuditLog.Clone()
	return out
}

// TotalVolumeKg suma del volumen de todas las líneas.
func (r OrderRequest) TotalVolumeKg() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Volume.Value)
	}
	return total
}
