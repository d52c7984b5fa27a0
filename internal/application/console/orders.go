package console

import (
	"context"
	"sort"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// ListOrders backlog filtrado, por prioridad, con semáforo de ETD.
func (uc *UseCase) ListOrders(_ context.Context) []dto.OrderView {
	s := uc.Snapshot()
	orders := lifecycle.FilterOrders(s.Orders, s.Filters)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Priority < orders[j].Priority })
	return dto.NewOrderViews(orders, uc.Now(), uc.cfg.Location)
}

// MoveToPriority reubica el pedido en el backlog.
func (uc *UseCase) MoveToPriority(ctx context.Context, id string, priority int) error {
	return uc.apply(ctx, "move_priority", func(s lifecycle.State, _ lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.MoveToPriority(s, id, priority)
	})
}

// UpdateShipping edita consignee / notify del pedido.
func (uc *UseCase) UpdateShipping(ctx context.Context, id string, in dto.ShippingRequest) error {
	return uc.apply(ctx, "update_shipping", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateShipping(s, env, id, in.Consignee, in.Notify)
	})
}

// UpdateDelay edita razón, responsable y comentario de atraso.
func (uc *UseCase) UpdateDelay(ctx context.Context, id string, in dto.DelayRequest) error {
	return uc.apply(ctx, "update_delay", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateDelay(s, env, id, in.Patch())
	})
}

// Dispatch mueve el pedido a Tránsito y devuelve el embarque creado.
func (uc *UseCase) Dispatch(ctx context.Context, id string) (entity.Shipment, error) {
	var shipment entity.Shipment
	err := uc.apply(ctx, "dispatch", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		next, err := lifecycle.Dispatch(s, env, id)
		if err == nil {
			shipment = next.Shipments[0]
		}
		return next, err
	})
	if err != nil {
		return entity.Shipment{}, err
	}
	uc.log.Info().Str("order_id", id).Str("shipment_id", shipment.ID).Msg("pedido despachado")
	return shipment, nil
}
