// Package kpi agrega los indicadores comerciales y de operación a partir de
// las colecciones del ciclo de vida. Todo se recalcula desde cero en cada
// llamada; no hay caché que invalidar.
package kpi

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Tone señal de cumplimiento de una meta.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneWarning Tone = "warning"
)

// OTIF on-time + docs OK sobre los cierres del periodo.
type OTIF struct {
	Pct   decimal.Decimal `json:"pct"`
	OK    int             `json:"ok"`
	Total int             `json:"total"`
}

// MixRow fila del mix por especie / mercado.
type MixRow struct {
	Specie     entity.Specie   `json:"specie"`
	Market     string          `json:"market"`
	Kg         decimal.Decimal `json:"kg"`
	Orders     int             `json:"orders"`
	RevenueUsd decimal.Decimal `json:"revenueUsd"`
	// MarginUsd nil si ningún registro del grupo trae margen.
	MarginUsd     *decimal.Decimal `json:"marginUsd"`
	MarginRecords int              `json:"marginRecords"`
	// MarginPartial: algunos registros del grupo no traen margen y MarginUsd los omite.
	MarginPartial bool            `json:"marginPartial"`
	SharePct      decimal.Decimal `json:"sharePct"`
}

// TargetTile valor real contra la meta del periodo.
type TargetTile struct {
	Actual decimal.Decimal  `json:"actual"`
	Target *decimal.Decimal `json:"target"`
	// AttainmentPct real/meta redondeado a entero; nil sin meta.
	AttainmentPct *decimal.Decimal `json:"attainmentPct"`
	Text          string           `json:"text"`
	Tone          Tone             `json:"tone"`
}

// ClaimsSummary reclamos abiertos y resueltos.
type ClaimsSummary struct {
	Open     int `json:"open"`
	Resolved int `json:"resolved"`
}

// Commercial KPI comerciales de un periodo YYYY-MM.
type Commercial struct {
	Period           string               `json:"period"`
	OrdersClosed     int                  `json:"ordersClosed"`
	KgClosed         decimal.Decimal      `json:"kgClosed"`
	AvgPriceUsdPerKg decimal.Decimal      `json:"avgPriceUsdPerKg"`
	OTIF             OTIF                 `json:"otif"`
	Mix              []MixRow             `json:"mix"`
	Targets          entity.PeriodTargets `json:"targets"`
	OrdersTile       TargetTile           `json:"ordersTile"`
	KgTile           TargetTile           `json:"kgTile"`
	OtifTile         TargetTile           `json:"otifTile"`
	Claims           ClaimsSummary        `json:"claims"`
}

// InPeriod registros cuyo deliveredAt cae en el periodo (año y mes en loc).
// Un deliveredAt ilegible no pertenece a ningún periodo.
func InPeriod(delivered []entity.DeliveredRecord, period string, loc *time.Location) []entity.DeliveredRecord {
	out := make([]entity.DeliveredRecord, 0, len(delivered))
	for _, d := range delivered {
		t, ok := derive.ParseDate(d.DeliveredAt, loc)
		if ok && derive.PeriodOf(t, loc) == period {
			out = append(out, d)
		}
	}
	return out
}

// IsOTIF deliveredAt <= eta (por timestamp) y docs OK. Fechas ilegibles cuentan como no-OTIF.
// Una ETA sin hora se toma como medianoche UTC de ese día.
func IsOTIF(d entity.DeliveredRecord) bool {
	deliveredAt, ok := derive.ParseDate(d.DeliveredAt, time.UTC)
	if !ok {
		return false
	}
	eta, ok := derive.ParseDate(d.ETA, time.UTC)
	if !ok {
		return false
	}
	return !deliveredAt.After(eta) && d.DocsStatus == entity.DocsOK
}

// ComputeOTIF porcentaje con un decimal.
func ComputeOTIF(records []entity.DeliveredRecord) OTIF {
	total := len(records)
	if total == 0 {
		return OTIF{Pct: decimal.Zero}
	}
	ok := 0
	for _, d := range records {
		if IsOTIF(d) {
			ok++
		}
	}
	pct := decimal.NewFromInt(int64(ok)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(1)
	return OTIF{Pct: pct, OK: ok, Total: total}
}

// KgClosed Σ shippedKg.
func KgClosed(records []entity.DeliveredRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range records {
		sum = sum.Add(d.ShippedKg)
	}
	return sum
}

// Mix agrupa por (especie, mercado). La especie cae a la derivada del producto,
// el mercado al país y luego a OTRO. Ordenado por kg descendente.
func Mix(records []entity.DeliveredRecord) []MixRow {
	total := KgClosed(records)
	type key struct {
		specie entity.Specie
		market string
	}
	groups := map[key]*MixRow{}
	order := make([]key, 0)

	for _, d := range records {
		specie := d.Specie
		if specie == "" {
			specie = derive.DeriveSpecie(d.Product)
		}
		market := d.Market
		if market == "" {
			market = d.Country
		}
		if market == "" {
			market = derive.CountryOther
		}
		k := key{specie, market}
		row, ok := groups[k]
		if !ok {
			row = &MixRow{Specie: specie, Market: market, Kg: decimal.Zero, RevenueUsd: decimal.Zero}
			groups[k] = row
			order = append(order, k)
		}
		row.Kg = row.Kg.Add(d.ShippedKg)
		row.Orders++
		if d.PriceUsdPerKg != nil {
			row.RevenueUsd = row.RevenueUsd.Add(d.PriceUsdPerKg.Mul(d.ShippedKg))
		}
		if d.MarginUsdPerKg != nil {
			m := decimal.Zero
			if row.MarginUsd != nil {
				m = *row.MarginUsd
			}
			m = m.Add(d.MarginUsdPerKg.Mul(d.ShippedKg))
			row.MarginUsd = &m
			row.MarginRecords++
		}
	}

	rows := make([]MixRow, 0, len(order))
	for _, k := range order {
		row := *groups[k]
		row.MarginPartial = row.MarginRecords > 0 && row.MarginRecords < row.Orders
		row.SharePct = decimal.Zero
		if total.IsPositive() {
			row.SharePct = row.Kg.Mul(hundred).Div(total).Round(1)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Kg.GreaterThan(rows[j].Kg) })
	return rows
}

// AvgPrice precio promedio ponderado por kg de los registros con precio.
func AvgPrice(records []entity.DeliveredRecord) decimal.Decimal {
	revenue, kg := decimal.Zero, decimal.Zero
	for _, d := range records {
		if d.PriceUsdPerKg == nil {
			continue
		}
		revenue = revenue.Add(d.PriceUsdPerKg.Mul(d.ShippedKg))
		kg = kg.Add(d.ShippedKg)
	}
	if !kg.IsPositive() {
		return decimal.Zero
	}
	return revenue.Div(kg).Round(2)
}

// SummarizeClaims cuenta reclamos abiertos (≠ OK) y resueltos.
func SummarizeClaims(claims []entity.Claim) ClaimsSummary {
	var s ClaimsSummary
	for _, c := range claims {
		if c.Status == entity.ClaimOK {
			s.Resolved++
		} else {
			s.Open++
		}
	}
	return s
}

// ComputeCommercial KPI del periodo a partir de entregados, metas y reclamos.
func ComputeCommercial(
	delivered []entity.DeliveredRecord,
	targets entity.CommercialTargets,
	claims []entity.Claim,
	period string,
	loc *time.Location,
) Commercial {
	records := InPeriod(delivered, period, loc)
	kg := KgClosed(records)
	otif := ComputeOTIF(records)
	pt := targets.TargetsByMonth[period]

	var ordersTarget *decimal.Decimal
	if pt.OrdersClosedTarget != nil {
		v := decimal.NewFromInt(int64(*pt.OrdersClosedTarget))
		ordersTarget = &v
	}

	return Commercial{
		Period:           period,
		OrdersClosed:     len(records),
		KgClosed:         kg,
		AvgPriceUsdPerKg: AvgPrice(records),
		OTIF:             otif,
		Mix:              Mix(records),
		Targets:          pt,
		OrdersTile:       ordersTile(len(records), ordersTarget),
		KgTile:           kgTile(kg, pt.KgClosedTarget),
		OtifTile:         otifTile(otif, pt.OtifTargetPct),
		Claims:           SummarizeClaims(claims),
	}
}
