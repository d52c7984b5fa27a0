// Package persistence guarda el estado de la consola como documentos JSON en un KVStore.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/pkg/logger"
)

// Claves de cada colección (antes del prefijo).
const (
	KeyOrders    = "mf.orders.v1"
	KeyRequests  = "mf.requests.v1"
	KeyShipments = "mf.shipments.v1"
	KeyDelivered = "mf.delivered.v1"
	KeyTargets   = "mf.commercial.targets.v1"
	KeyClaims    = "mf.claims.v1"
	KeyHistory   = "mf.history.v1"
)

// Asegura que ConsoleRepo implementa repository.ConsoleRepository.
var _ repository.ConsoleRepository = (*ConsoleRepo)(nil)

// ConsoleRepo adaptador de persistencia de la consola.
type ConsoleRepo struct {
	store  repository.KVStore
	prefix string
	seed   lifecycle.Seed
	claims []entity.Claim
	log    *logger.Logger
}

// NewConsoleRepository construye el repositorio. prefix se antepone a todas las claves.
func NewConsoleRepository(store repository.KVStore, prefix string, log *logger.Logger) *ConsoleRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsoleRepo{
		store:  store,
		prefix: prefix,
		seed:   DefaultSeed(),
		claims: SeedClaims(),
		log:    log.Component("persistence"),
	}
}

// Seed datos iniciales.
func (r *ConsoleRepo) Seed() lifecycle.Seed { return r.seed }

func (r *ConsoleRepo) key(k string) string { return r.prefix + k }

// Load lee todas las colecciones con su política de respaldo:
// pedidos y solicitudes caen al seed si faltan, son ilegibles o vienen vacíos;
// embarques y reclamos caen al seed si faltan o son ilegibles;
// entregados, bitácora y metas arrancan vacíos.
// El estado de instrucciones de embarque se recalcula siempre desde consignee / notify.
func (r *ConsoleRepo) Load(ctx context.Context) lifecycle.State {
	var s lifecycle.State

	if orders, ok := loadArray[entity.BacklogOrder](ctx, r, KeyOrders); ok && len(orders) > 0 {
		for i := range orders {
			orders[i].ShippingInstructionsOk = derive.ShippingInstructionsOK(orders[i].ShippingConsignee, orders[i].ShippingNotify)
		}
		s.Orders = orders
	} else {
		s.Orders = lifecycle.NormalizePriorities(r.seed.Orders)
	}
	if reqs, ok := loadArray[entity.OrderRequest](ctx, r, KeyRequests); ok && len(reqs) > 0 {
		for i := range reqs {
			reqs[i].ShippingInstructionsStatus = derive.ShippingStatus(reqs[i].Consignee, reqs[i].Notify)
		}
		s.Requests = reqs
	} else {
		s.Requests = cloneRequests(r.seed.Requests)
	}
	if ships, ok := loadArray[entity.Shipment](ctx, r, KeyShipments); ok {
		s.Shipments = ships
	} else {
		s.Shipments = cloneShipments(r.seed.Shipments)
	}
	if claims, ok := loadArray[entity.Claim](ctx, r, KeyClaims); ok {
		s.Claims = claims
	} else {
		s.Claims = append([]entity.Claim(nil), r.claims...)
	}

	s.Delivered, _ = loadArray[entity.DeliveredRecord](ctx, r, KeyDelivered)
	if s.Delivered == nil {
		s.Delivered = []entity.DeliveredRecord{}
	}
	s.History = r.loadHistory(ctx)
	s.Targets = r.loadTargets(ctx)
	return s
}

// Save escribe las colecciones cambiadas. Los filtros no se persisten.
// Si el almacén soporta lotes, las colecciones de una misma transición se
// escriben en un solo lote.
func (r *ConsoleRepo) Save(ctx context.Context, s lifecycle.State, changed lifecycle.Change) {
	docs := r.changedDocs(s, changed)
	if len(docs) == 0 {
		return
	}
	if b, ok := r.store.(repository.KVBatcher); ok && len(docs) > 1 {
		err := b.Batch(ctx, func(tx repository.KVStore) error {
			for _, d := range docs {
				if err := r.write(ctx, tx, d); err != nil {
					return fmt.Errorf("%s: %w", d.key, err)
				}
			}
			return nil
		})
		if err != nil {
			r.log.Warn().Err(err).Int("keys", len(docs)).Msg("no se pudo guardar el lote; el estado en memoria se mantiene")
		}
		return
	}
	for _, d := range docs {
		if err := r.write(ctx, r.store, d); err != nil {
			r.log.Warn().Err(err).Str("key", d.key).Msg("no se pudo guardar; el estado en memoria se mantiene")
		}
	}
}

// document es una colección serializada. drop indica que la clave se borra.
type document struct {
	key  string
	raw  string
	drop bool
}

func (r *ConsoleRepo) write(ctx context.Context, kv repository.KVStore, d document) error {
	if d.drop {
		return kv.Del(ctx, r.key(d.key))
	}
	return kv.Set(ctx, r.key(d.key), d.raw)
}

func (r *ConsoleRepo) changedDocs(s lifecycle.State, changed lifecycle.Change) []document {
	collections := []struct {
		bit lifecycle.Change
		key string
		v   any
	}{
		{lifecycle.ChangedOrders, KeyOrders, s.Orders},
		{lifecycle.ChangedRequests, KeyRequests, s.Requests},
		{lifecycle.ChangedShipments, KeyShipments, s.Shipments},
		{lifecycle.ChangedDelivered, KeyDelivered, s.Delivered},
		{lifecycle.ChangedTargets, KeyTargets, s.Targets},
		{lifecycle.ChangedClaims, KeyClaims, s.Claims},
		{lifecycle.ChangedHistory, KeyHistory, s.History},
	}
	var docs []document
	for _, c := range collections {
		if !changed.Has(c.bit) {
			continue
		}
		// sin metas en ningún periodo: la clave se borra y Load vuelve al valor vacío
		if c.key == KeyTargets && len(s.Targets.TargetsByMonth) == 0 {
			docs = append(docs, document{key: c.key, drop: true})
			continue
		}
		raw, err := json.Marshal(c.v)
		if err != nil {
			r.log.Error().Err(err).Str("key", c.key).Msg("serializar colección")
			continue
		}
		docs = append(docs, document{key: c.key, raw: string(raw)})
	}
	return docs
}

func (r *ConsoleRepo) read(ctx context.Context, key string) (string, bool) {
	raw, found, err := r.store.Get(ctx, r.key(key))
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("no se pudo leer; se usan valores iniciales")
		return "", false
	}
	return raw, found && raw != ""
}

// loadArray lee un arreglo JSON cuyos elementos traen todos un id string no vacío.
func loadArray[T any](ctx context.Context, r *ConsoleRepo, key string) ([]T, bool) {
	raw, ok := r.read(ctx, key)
	if !ok {
		return nil, false
	}
	if err := validateArray(raw); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("datos persistidos inválidos")
		return nil, false
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("datos persistidos inválidos")
		return nil, false
	}
	return out, true
}

func validateArray(raw string) error {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("no es un arreglo de objetos: %w", err)
	}
	if items == nil {
		return errors.New("no es un arreglo de objetos")
	}
	for i, it := range items {
		var id string
		if err := json.Unmarshal(it["id"], &id); err != nil || id == "" {
			return fmt.Errorf("elemento %d sin id", i)
		}
	}
	return nil
}

func (r *ConsoleRepo) loadHistory(ctx context.Context) entity.AuditLog {
	raw, ok := r.read(ctx, KeyHistory)
	if !ok {
		return entity.AuditLog{}
	}
	var out entity.AuditLog
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.log.Warn().Err(err).Str("key", KeyHistory).Msg("bitácora inválida")
		return entity.AuditLog{}
	}
	return out
}

func (r *ConsoleRepo) loadTargets(ctx context.Context) entity.CommercialTargets {
	empty := entity.CommercialTargets{TargetsByMonth: map[string]entity.PeriodTargets{}}
	raw, ok := r.read(ctx, KeyTargets)
	if !ok {
		return empty
	}
	var t entity.CommercialTargets
	if err := json.Unmarshal([]byte(raw), &t); err != nil || t.TargetsByMonth == nil {
		r.log.Warn().Str("key", KeyTargets).Msg("metas inválidas")
		return empty
	}
	return t
}

func cloneRequests(in []entity.OrderRequest) []entity.OrderRequest {
	out := make([]entity.OrderRequest, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}

func cloneShipments(in []entity.Shipment) []entity.Shipment {
	out := make([]entity.Shipment, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}
