package console

import (
	"context"
	"fmt"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// ListShipments embarques filtrados por ETA ascendente (sin ETA al final).
func (uc *UseCase) ListShipments(_ context.Context) []dto.ShipmentView {
	s := uc.Snapshot()
	loc := uc.cfg.Location
	shipments := lifecycle.SortShipmentsByETA(lifecycle.FilterShipments(s.Shipments, s.Filters), loc)
	return dto.NewShipmentViews(shipments, uc.Now(), loc)
}

// UpdateShipment edición parcial del embarque.
func (uc *UseCase) UpdateShipment(ctx context.Context, id string, in dto.UpdateShipmentRequest) error {
	return uc.apply(ctx, "update_shipment", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateShipment(s, env, id, in.Patch(), in.Message)
	})
}

// ToggleDocs avanza el estado de documentos y devuelve el nuevo valor.
func (uc *UseCase) ToggleDocs(ctx context.Context, id string) (entity.DocsStatus, error) {
	var status entity.DocsStatus
	err := uc.apply(ctx, "toggle_docs", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		next, err := lifecycle.ToggleDocs(s, env, id)
		if err != nil {
			return next, err
		}
		for _, sh := range next.Shipments {
			if sh.ID == id {
				status = sh.DocsStatus
				break
			}
		}
		return next, nil
	})
	return status, err
}

// ConfirmDelivered mueve el embarque a Entregados.
func (uc *UseCase) ConfirmDelivered(ctx context.Context, id string) error {
	err := uc.apply(ctx, "confirm_delivered", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		next, ok := lifecycle.ConfirmDelivered(s, env, id)
		if !ok {
			return s, fmt.Errorf("embarque %s: %w", id, domain.ErrNotFound)
		}
		return next, nil
	})
	if err == nil {
		uc.log.Info().Str("shipment_id", id).Msg("entrega confirmada")
	}
	return err
}

// ListDelivered registros entregados, el más reciente primero.
func (uc *UseCase) ListDelivered(_ context.Context) []entity.DeliveredRecord {
	return uc.Snapshot().Delivered
}

// History bitácora global.
func (uc *UseCase) History(_ context.Context) entity.AuditLog {
	return uc.Snapshot().History
}
