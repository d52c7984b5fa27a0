package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// UpdateShipmentRequest edición parcial de un embarque. Fechas en YYYY-MM-DD.
type UpdateShipmentRequest struct {
	Booking        *string          `json:"booking" validate:"omitempty,max=50"`
	ETD            *string          `json:"etd"`
	ETA            *string          `json:"eta"`
	PriceUsdPerKg  *decimal.Decimal `json:"priceUsdPerKg"`
	MarginUsdPerKg *decimal.Decimal `json:"marginUsdPerKg"`
	Message        string           `json:"message" validate:"max=500"`
}

// Patch convierte la entrada al patch de dominio.
func (r UpdateShipmentRequest) Patch() lifecycle.ShipmentPatch {
	return lifecycle.ShipmentPatch{
		Booking:        r.Booking,
		ETD:            r.ETD,
		ETA:            r.ETA,
		PriceUsdPerKg:  r.PriceUsdPerKg,
		MarginUsdPerKg: r.MarginUsdPerKg,
	}
}

// ShipmentView embarque con el tramo de ETA.
type ShipmentView struct {
	entity.Shipment
	ETABucket derive.ETABucket `json:"etaBucket"`
	DaysToETA *int             `json:"daysToEta,omitempty"`
}

// NewShipmentViews agrega tramo y días a ETA.
func NewShipmentViews(shipments []entity.Shipment, now time.Time, loc *time.Location) []ShipmentView {
	out := make([]ShipmentView, 0, len(shipments))
	for _, s := range shipments {
		v := ShipmentView{Shipment: s, ETABucket: derive.ETARiskBucket(s.ETA, now, loc)}
		if days, ok := derive.DayDiff(s.ETA, now, loc); ok {
			v.DaysToETA = &days
		}
		out = append(out, v)
	}
	return out
}
