package lifecycle

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// SetFilters reemplaza el filtro global.
func SetFilters(s State, f entity.GlobalFilters) State {
	s.Filters = f
	s.mark(ChangedFilters)
	return s
}

// FilterOrders pedidos que cumplen el filtro. Especie y calibre se buscan
// en el texto del producto.
func FilterOrders(orders []entity.BacklogOrder, f entity.GlobalFilters) []entity.BacklogOrder {
	out := make([]entity.BacklogOrder, 0, len(orders))
	for _, o := range orders {
		if matchesCommon(o.Customer, o.Product, o.Country, f) {
			out = append(out, o)
		}
	}
	return out
}

// FilterShipments igual que FilterOrders para embarques.
func FilterShipments(shipments []entity.Shipment, f entity.GlobalFilters) []entity.Shipment {
	out := make([]entity.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if matchesCommon(sh.Customer, sh.Product, sh.Country, f) {
			out = append(out, sh)
		}
	}
	return out
}

func matchesCommon(customer, product, country string, f entity.GlobalFilters) bool {
	return derive.MatchesFilter(customer, f.Customer) &&
		derive.MatchesFilter(product, f.Product) &&
		derive.MatchesFilter(country, f.Country) &&
		derive.MatchesFilter(product, f.Species) &&
		derive.MatchesFilter(product, f.Caliber)
}

// FilterRequests filtra Solicitudes. País contra destino (con o sin incoterm);
// producto, especie y calibre contra el texto de las líneas.
func FilterRequests(requests []entity.OrderRequest, f entity.GlobalFilters) []entity.OrderRequest {
	out := make([]entity.OrderRequest, 0, len(requests))
	for _, r := range requests {
		if !derive.MatchesFilter(r.Client, f.Customer) {
			continue
		}
		if strings.TrimSpace(f.Country) != "" {
			if !derive.MatchesFilter(r.Destination, f.Country) &&
				!derive.MatchesFilter(r.Incoterm+" "+r.Destination, f.Country) {
				continue
			}
		}
		text := itemsText(r.Items)
		if !derive.MatchesFilter(text, f.Product) ||
			!derive.MatchesFilter(text, f.Species) ||
			!derive.MatchesFilter(text, f.Caliber) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func itemsText(items []entity.RequestItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Product+" "+it.Size+" "+it.Quality)
	}
	return strings.Join(parts, " | ")
}

// SortRequestsByUpdated copia ordenada por updatedAt descendente.
func SortRequestsByUpdated(requests []entity.OrderRequest) []entity.OrderRequest {
	out := append([]entity.OrderRequest(nil), requests...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := derive.ParseDate(out[i].UpdatedAt, time.UTC)
		tj, _ := derive.ParseDate(out[j].UpdatedAt, time.UTC)
		return ti.After(tj)
	})
	return out
}

// SortShipmentsByETA copia ordenada por ETA ascendente; sin ETA al final.
func SortShipmentsByETA(shipments []entity.Shipment, loc *time.Location) []entity.Shipment {
	out := append([]entity.Shipment(nil), shipments...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := derive.ParseDate(out[i].ETA, loc)
		tj, okj := derive.ParseDate(out[j].ETA, loc)
		switch {
		case oki && okj:
			return ti.Before(tj)
		case oki:
			return true
		default:
			return false
		}
	})
	return out
}

// Seed datos iniciales de la consola.
type Seed struct {
	Orders    []entity.BacklogOrder
	Requests  []entity.OrderRequest
	Shipments []entity.Shipment
}

// Reset restaura pedidos, solicitudes y embarques al seed, vacía Entregados
// y limpia los filtros. Metas, reclamos y bitácora se conservan.
func Reset(s State, seed Seed) State {
	s.Orders = NormalizePriorities(seed.Orders)
	s.Requests = append([]entity.OrderRequest(nil), seed.Requests...)
	s.Shipments = append([]entity.Shipment(nil), seed.Shipments...)
	s.Delivered = []entity.DeliveredRecord{}
	s.Filters = entity.GlobalFilters{}
	s.mark(ChangedOrders | ChangedRequests | ChangedShipments | ChangedDelivered | ChangedFilters)
	return s
}
