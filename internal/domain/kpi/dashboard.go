package kpi

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// PriorityChartSize pedidos mostrados en el gráfico de prioridad.
const PriorityChartSize = 8

// ChartRow barra de un gráfico.
type ChartRow struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Dashboard tablero de operación.
type Dashboard struct {
	PendingKg       decimal.Decimal   `json:"pendingKg"`
	TransitOrders   int               `json:"transitOrders"`
	ClosedThisMonth int               `json:"closedThisMonth"`
	PriorityChart   []ChartRow        `json:"priorityChart"`
	DocsChart       []ChartRow        `json:"docsChart"`
	ETAChart        []ChartRow        `json:"etaChart"`
	ETAToday        []entity.Shipment `json:"etaToday"`
}

// ComputeDashboard tablero a partir de pedidos y embarques (ya filtrados) y todos los entregados.
func ComputeDashboard(
	orders []entity.BacklogOrder,
	shipments []entity.Shipment,
	delivered []entity.DeliveredRecord,
	now time.Time,
	loc *time.Location,
) Dashboard {
	d := Dashboard{
		PendingKg:       decimal.Zero,
		ClosedThisMonth: len(InPeriod(delivered, derive.PeriodOf(now, loc), loc)),
		PriorityChart:   PriorityChart(orders),
		DocsChart:       DocsChart(shipments),
		ETAChart:        ETAChart(shipments, now, loc),
		ETAToday:        ETAToday(shipments, now, loc),
	}
	for _, o := range orders {
		d.PendingKg = d.PendingKg.Add(o.PendingKg)
	}
	for _, s := range shipments {
		if InFollowUp(s, now, loc) {
			d.TransitOrders++
		}
	}
	return d
}

// InFollowUp embarque en seguimiento: ETA futura (o sin ETA) o docs distintos de OK.
func InFollowUp(s entity.Shipment, now time.Time, loc *time.Location) bool {
	notArrived := true
	if days, ok := derive.DayDiff(s.ETA, now, loc); ok {
		notArrived = days > 0
	}
	return notArrived || docsOf(s) != entity.DocsOK
}

// PriorityChart los primeros pedidos por prioridad con sus kg pendientes.
func PriorityChart(orders []entity.BacklogOrder) []ChartRow {
	sorted := append([]entity.BacklogOrder(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })
	if len(sorted) > PriorityChartSize {
		sorted = sorted[:PriorityChartSize]
	}
	rows := make([]ChartRow, 0, len(sorted))
	for _, o := range sorted {
		rows = append(rows, ChartRow{
			Label: fmt.Sprintf("P%d • %s", o.Priority, o.Customer),
			Value: o.PendingKg,
		})
	}
	return rows
}

// DocsChart embarques por estado de documentos, de mayor a menor.
func DocsChart(shipments []entity.Shipment) []ChartRow {
	counts := map[entity.DocsStatus]int64{}
	order := make([]entity.DocsStatus, 0, 3)
	for _, s := range shipments {
		k := docsOf(s)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	rows := make([]ChartRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, ChartRow{Label: string(k), Value: decimal.NewFromInt(counts[k])})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value.GreaterThan(rows[j].Value) })
	return rows
}

// ETAChart conteo por tramo de ETA. Siempre trae los seis tramos en orden fijo.
func ETAChart(shipments []entity.Shipment, now time.Time, loc *time.Location) []ChartRow {
	counts := map[derive.ETABucket]int64{}
	for _, s := range shipments {
		counts[derive.ETARiskBucket(s.ETA, now, loc)]++
	}
	rows := make([]ChartRow, 0, len(derive.ETABuckets))
	for _, b := range derive.ETABuckets {
		rows = append(rows, ChartRow{Label: b.Label(), Value: decimal.NewFromInt(counts[b])})
	}
	return rows
}

// ETAToday embarques que llegan hoy.
func ETAToday(shipments []entity.Shipment, now time.Time, loc *time.Location) []entity.Shipment {
	out := make([]entity.Shipment, 0)
	for _, s := range shipments {
		if days, ok := derive.DayDiff(s.ETA, now, loc); ok && days == 0 {
			out = append(out, s)
		}
	}
	return out
}

func docsOf(s entity.Shipment) entity.DocsStatus {
	if s.DocsStatus == "" {
		return entity.DocsPending
	}
	return s.DocsStatus
}
