package persistence

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// DefaultSeed backlog, solicitudes y embarques de demostración.
func DefaultSeed() lifecycle.Seed {
	return lifecycle.Seed{
		Orders:    seedOrders(),
		Requests:  seedRequests(),
		Shipments: seedShipments(),
	}
}

func seedOrders() []entity.BacklogOrder {
	orders := []entity.BacklogOrder{
		{
			ID:                "ORD-1001",
			PI:                "PI-23561",
			Customer:          `LLC "UNIFROST"`,
			Country:           "RUSSIA",
			Destination:       "CFR ST. PETERSBURG - RUSSIA",
			Product:           "ATLANTIC FROZEN HON IQF (5-6 / 6-7 MIX)",
			Plant:             lifecycle.DefaultPlant,
			ETD:               "2026-02-01",
			PendingKg:         d("15600"),
			PriceUsdPerKg:     d("7.7"),
			Priority:          1,
			Commercial:        "NICOLAS CUADRA",
			ShippingConsignee: "LLC UNIFROST, St Petersburg",
			ShippingNotify:    "Artem Surovtcev",
		},
		{
			ID:            "ORD-1002",
			PI:            "PI-3008",
			Customer:      "Malaysia Importer A",
			Country:       "MALAYSIA",
			Destination:   "CFR Port Klang, Malaysia",
			Product:       "COHO HG IQF (9 lbs Up)",
			Plant:         lifecycle.DefaultPlant,
			ETD:           "2026-01-15",
			PendingKg:     d("20000"),
			PriceUsdPerKg: d("6.8"),
			Priority:      2,
			Commercial:    "NICOLAS CUADRA",
		},
		{
			ID:                "ORD-1003",
			PI:                "PI-44112",
			Customer:          "Minute Gourmet",
			Country:           "PHILIPPINES",
			Destination:       "CFR Manila, Philippines",
			Product:           "ATLANTIC HON IQF (6-7)",
			Plant:             lifecycle.DefaultPlant,
			ETD:               "2026-03-10",
			PendingKg:         d("18000"),
			PriceUsdPerKg:     d("7.4"),
			Priority:          3,
			Commercial:        "NICOLAS CUADRA",
			ShippingConsignee: "Minute Gourmet Inc.",
		},
	}
	for i := range orders {
		orders[i].ShippingInstructionsOk = derive.ShippingInstructionsOK(orders[i].ShippingConsignee, orders[i].ShippingNotify)
	}
	return orders
}

func seedRequests() []entity.OrderRequest {
	const ts = "2026-01-20T14:00:00.000Z"
	reqs := []entity.OrderRequest{
		{
			ID:               "REQ-2001",
			CreatedAt:        ts,
			UpdatedAt:        ts,
			Requester:        "NICOLAS CUADRA",
			Client:           "Dongwon",
			Consignee:        "Dongwon Industries Co., Ltd.",
			Notify:           "Mr. Park Jae-won",
			Incoterm:         entity.IncotermCFR,
			Destination:      "Busan, Korea",
			ShipmentEtdMonth: "2026-04",
			PaymentMethod:    lifecycle.DefaultPaymentMethod,
			Certifications:   []string{entity.CertASC},
			Inspection:       true,
			AdditionalLabel:  "NO",
			Items: []entity.RequestItem{
				{
					ID:      "ITEM-2001-1",
					Product: "COHO FROZEN HON",
					Quality: "Premium",
					Size:    "10+",
					Price:   entity.Price{Value: d("6.9"), UOM: entity.UOMKg},
					Volume:  entity.Volume{Value: d("8000"), UOM: entity.UOMKg},
				},
			},
			Status: entity.RequestSent,
		},
		{
			ID:               "REQ-2002",
			CreatedAt:        ts,
			UpdatedAt:        ts,
			Requester:        "NICOLAS CUADRA",
			Client:           "Seafood Global Co.",
			Incoterm:         entity.IncotermCFR,
			Destination:      "Ho Chi Minh City, Vietnam",
			ShipmentEtdMonth: "2026-05",
			PaymentMethod:    lifecycle.DefaultPaymentMethod,
			Certifications:   []string{entity.CertNA},
			AdditionalLabel:  "NO",
			Items: []entity.RequestItem{
				{
					ID:      "ITEM-2002-1",
					Product: "COHO HG IQF",
					Quality: "Premium",
					Size:    "8-9 lbs",
					Price:   entity.Price{Value: d("3.1"), UOM: entity.UOMLb},
					Volume:  entity.Volume{Value: d("12000"), UOM: entity.UOMKg},
				},
				{
					ID:      "ITEM-2002-2",
					Product: "COHO HG IQF",
					Quality: "Industrial",
					Size:    "6-8 lbs",
					Price:   entity.Price{Value: d("5.9"), UOM: entity.UOMKg},
					Volume:  entity.Volume{Value: d("8000"), UOM: entity.UOMKg},
				},
			},
			Status: entity.RequestDraft,
		},
	}
	for i := range reqs {
		reqs[i].ShippingInstructionsStatus = derive.ShippingStatus(reqs[i].Consignee, reqs[i].Notify)
	}
	return reqs
}

func seedShipments() []entity.Shipment {
	return []entity.Shipment{
		{
			ID:             "SHP-ORD-0990",
			OrderID:        "ORD-0990",
			PI:             "PI-22810",
			Customer:       "Thai Foods Ltd",
			Country:        "THAILAND",
			Destination:    "CFR Laem Chabang, Thailand",
			Product:        "ATLANTIC HON IQF (6-7)",
			Booking:        "MSKU-771204",
			ETD:            "2026-01-05",
			ETA:            "2026-02-02",
			DocsStatus:     entity.DocsOK,
			ShippedKg:      d("18500"),
			Specie:         entity.SpecieAtlantic,
			Market:         "THAILAND",
			PriceUsdPerKg:  dp("7.55"),
			MarginUsdPerKg: dp("0.62"),
		},
		{
			ID:            "SHP-ORD-0995",
			OrderID:       "ORD-0995",
			PI:            "PI-3002",
			Customer:      "Malaysia Importer A",
			Country:       "MALAYSIA",
			Destination:   "CFR Port Klang, Malaysia",
			Product:       "COHO HG IQF (9 lbs Up)",
			Booking:       "HLCU-330915",
			ETD:           "2026-01-20",
			ETA:           "2026-02-24",
			DocsStatus:    entity.DocsDraftSent,
			ShippedKg:     d("20000"),
			Specie:        entity.SpecieCoho,
			Market:        "MALAYSIA",
			PriceUsdPerKg: dp("6.7"),
		},
	}
}

// SeedClaims reclamos iniciales.
func SeedClaims() []entity.Claim {
	return []entity.Claim{
		{
			ID:                "CL-001",
			Customer:          `LLC "UNIFROST"`,
			Market:            "UEE",
			Product:           "Atlantic Frozen HON IQF 5-6",
			QtyKg:             d("15600"),
			Severity:          entity.SeverityMed,
			Status:            entity.ClaimPendingResponse,
			OpenedDate:        "2025-06-14",
			Description:       "Cliente reporta calidad inferior en lote 45623. Peces con escamas y manchas marrones en algunos filetes.",
			ReceivedDate:      "2025-06-15",
			ResponsiblePerson: "Carlos Mendoza",
		},
		{
			ID:                "CL-002",
			Customer:          "Dongwon",
			Market:            "Korea",
			Product:           "Coho Frozen HON 10+",
			QtyKg:             d("8000"),
			Severity:          entity.SeverityLow,
			Status:            entity.ClaimPendingSend,
			OpenedDate:        "2025-07-03",
			Description:       "Embalaje presenta daños menores en 3 pallets. Solicitan inspección fotográfica.",
			ReceivedDate:      "2025-07-04",
			ResponsiblePerson: "Ana Fernández",
		},
		{
			ID:                "CL-003",
			Customer:          "Minute Gourmet",
			Market:            "Philippines",
			Product:           "Atlantic Fillet Trim C",
			QtyKg:             d("5000"),
			Severity:          entity.SeverityHigh,
			Status:            entity.ClaimPendingResponse,
			OpenedDate:        "2025-06-28",
			Description:       "Temperatura fuera de rango durante transporte. Container llegó a 2°C por encima del límite especificado.",
			ReceivedDate:      "2025-06-29",
			ResponsiblePerson: "Roberto Silva",
		},
		{
			ID:                "CL-004",
			Customer:          "Seafood Global Co.",
			Market:            "Vietnam",
			Product:           "Coho HG IQF 8-9 lbs",
			QtyKg:             d("12000"),
			Severity:          entity.SeverityLow,
			Status:            entity.ClaimOK,
			OpenedDate:        "2025-05-10",
			Description:       "Cliente reportó pesos variables en algunas cajas. Solicitó verificación de peso neto.",
			ReceivedDate:      "2025-05-11",
			ResponsiblePerson: "María López",
			CloseReason:       "Se verificaron los pesos y están dentro del rango aceptable (+/- 2%). Cliente aceptó explicación técnica.",
			ClosedDate:        "2025-05-18",
		},
		{
			ID:                "CL-005",
			Customer:          "Thai Foods Ltd",
			Market:            "Thailand",
			Product:           "Atlantic HON 6-7",
			QtyKg:             d("18500"),
			Severity:          entity.SeverityMed,
			Status:            entity.ClaimOK,
			OpenedDate:        "2025-06-01",
			Description:       "Reclamo por calibre inconsistente. 15% del lote con calibre fuera de especificación.",
			ReceivedDate:      "2025-06-02",
			ResponsiblePerson: "Carlos Mendoza",
			CloseReason:       "Se confirmó error en clasificación. Se ofreció nota de crédito por el 10% del valor del lote afectado.",
			CreditNote:        true,
			CreditNoteAmount:  dp("8500"),
			ClosedDate:        "2025-06-12",
		},
	}
}
