package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// SaveRequestRequest guarda una Solicitud completa en la bandeja.
type SaveRequestRequest struct {
	Status  string              `json:"status" validate:"required,oneof=BORRADOR ENVIADA"`
	Request entity.OrderRequest `json:"request"`
}

// UpdateRequestRequest edición parcial de una Solicitud. Campo ausente = sin cambio.
type UpdateRequestRequest struct {
	Client                 *string               `json:"client"`
	Consignee              *string               `json:"consignee"`
	Notify                 *string               `json:"notify"`
	Incoterm               *string               `json:"incoterm" validate:"omitempty,oneof=CFR FOB CIF"`
	Destination            *string               `json:"destination"`
	ShipmentEtdMonth       *string               `json:"shipmentEtdMonth" validate:"omitempty,period"`
	PaymentMethod          *string               `json:"paymentMethod"`
	Certifications         *[]string             `json:"certifications"`
	Inspection             *bool                 `json:"inspection"`
	AdditionalLabel        *string               `json:"additionalLabel" validate:"omitempty,oneof=YES NO"`
	AdditionalRequirements *string               `json:"additionalRequirements"`
	Comments               *string               `json:"comments"`
	Items                  *[]entity.RequestItem `json:"items"`
	ERP                    *entity.ERPRefs       `json:"erp"`
	Message                string                `json:"message" validate:"max=500"`
}

// Patch convierte la entrada al patch de dominio.
func (r UpdateRequestRequest) Patch() lifecycle.RequestPatch {
	return lifecycle.RequestPatch{
		Client:                 r.Client,
		Consignee:              r.Consignee,
		Notify:                 r.Notify,
		Incoterm:               r.Incoterm,
		Destination:            r.Destination,
		ShipmentEtdMonth:       r.ShipmentEtdMonth,
		PaymentMethod:          r.PaymentMethod,
		Certifications:         r.Certifications,
		Inspection:             r.Inspection,
		AdditionalLabel:        r.AdditionalLabel,
		AdditionalRequirements: r.AdditionalRequirements,
		Comments:               r.Comments,
		Items:                  r.Items,
		ERP:                    r.ERP,
	}
}

// RequestStatusRequest cambio manual de estado. PI CREADA no se acepta aquí.
type RequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=BORRADOR ENVIADA EN_REVISION OBSERVADA RECHAZADA CREADA_EN_ERP"`
}

// PriceInput precio de una línea.
type PriceInput struct {
	Value decimal.Decimal `json:"value"`
	UOM   string          `json:"uom" validate:"omitempty,oneof=kg lb"`
}

// ItemRequest línea nueva o edición de una existente.
type ItemRequest struct {
	Product  *string          `json:"product" validate:"omitempty,max=200"`
	Quality  *string          `json:"quality" validate:"omitempty,max=100"`
	Size     *string          `json:"size" validate:"omitempty,max=100"`
	Price    *PriceInput      `json:"price"`
	VolumeKg *decimal.Decimal `json:"volumeKg"`
}

// Empty indica que no vino ningún campo.
func (r ItemRequest) Empty() bool {
	return r.Product == nil && r.Quality == nil && r.Size == nil && r.Price == nil && r.VolumeKg == nil
}

// Item línea completa para agregar. Los campos ausentes toman los valores de base.
func (r ItemRequest) Item(base entity.RequestItem) entity.RequestItem {
	it := base
	if r.Product != nil {
		it.Product = *r.Product
	}
	if r.Quality != nil {
		it.Quality = *r.Quality
	}
	if r.Size != nil {
		it.Size = *r.Size
	}
	if r.Price != nil {
		it.Price = entity.Price{Value: r.Price.Value, UOM: r.Price.UOM}
	}
	if r.VolumeKg != nil {
		it.Volume = entity.Volume{Value: *r.VolumeKg, UOM: entity.UOMKg}
	}
	return it
}

// Patch convierte la entrada al patch de línea.
func (r ItemRequest) Patch() lifecycle.ItemPatch {
	p := lifecycle.ItemPatch{
		Product: r.Product,
		Quality: r.Quality,
		Size:    r.Size,
		Volume:  r.VolumeKg,
	}
	if r.Price != nil {
		p.Price = &entity.Price{Value: r.Price.Value, UOM: r.Price.UOM}
	}
	return p
}

// AssignPIRequest asignación de PI a una Solicitud.
type AssignPIRequest struct {
	PI string `json:"pi" validate:"required,pi"`
}

// IDResponse identificador de la entidad creada.
type IDResponse struct {
	ID string `json:"id"`
}
