package console

import (
	"context"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// ListRequests Solicitudes filtradas, la editada más reciente primero.
func (uc *UseCase) ListRequests(_ context.Context) []entity.OrderRequest {
	s := uc.Snapshot()
	return lifecycle.SortRequestsByUpdated(lifecycle.FilterRequests(s.Requests, s.Filters))
}

// GetRequest Solicitud por ID.
func (uc *UseCase) GetRequest(_ context.Context, id string) (entity.OrderRequest, bool) {
	for _, r := range uc.Snapshot().Requests {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return entity.OrderRequest{}, false
}

// RequestTemplate Solicitud en BORRADOR lista para editar; no queda guardada.
// El solicitante es el usuario del contexto o el configurado por defecto.
func (uc *UseCase) RequestTemplate(ctx context.Context) entity.OrderRequest {
	requester := ActorFrom(ctx)
	if requester == "" {
		requester = uc.cfg.Requester
	}
	return lifecycle.NewRequestTemplate(uc.env(ctx), requester)
}

// SaveRequest guarda la Solicitud como BORRADOR o ENVIADA y devuelve su ID.
func (uc *UseCase) SaveRequest(ctx context.Context, in dto.SaveRequestRequest) (string, error) {
	var id string
	err := uc.apply(ctx, "save_request", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		req := in.Request
		if req.Requester == "" {
			req.Requester = env.Actor
		}
		if req.Requester == "" {
			req.Requester = uc.cfg.Requester
		}
		next, err := lifecycle.SaveRequest(s, env, req, entity.RequestStatus(in.Status))
		if err == nil {
			id = next.Requests[0].ID
		}
		return next, err
	})
	return id, err
}

// UpdateRequest edición parcial con entrada de bitácora.
func (uc *UseCase) UpdateRequest(ctx context.Context, id string, in dto.UpdateRequestRequest) error {
	return uc.apply(ctx, "update_request", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateRequest(s, env, id, in.Patch(), in.Message)
	})
}

// SetRequestStatus cambio manual de estado.
func (uc *UseCase) SetRequestStatus(ctx context.Context, id, status string) error {
	return uc.apply(ctx, "request_status", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.SetRequestStatus(s, env, id, entity.RequestStatus(status))
	})
}

// AddRequestItem agrega una línea (vacía si la entrada no trae campos) y devuelve su ID.
func (uc *UseCase) AddRequestItem(ctx context.Context, id string, in dto.ItemRequest) (string, error) {
	var itemID string
	err := uc.apply(ctx, "add_item", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		var item *entity.RequestItem
		if !in.Empty() {
			it := in.Item(lifecycle.NewItem(env))
			item = &it
		}
		next, newID, err := lifecycle.AddRequestItem(s, env, id, item)
		itemID = newID
		return next, err
	})
	return itemID, err
}

// UpdateRequestItem edita una línea.
func (uc *UseCase) UpdateRequestItem(ctx context.Context, id, itemID string, in dto.ItemRequest) error {
	return uc.apply(ctx, "update_item", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateRequestItem(s, env, id, itemID, in.Patch())
	})
}

// RemoveRequestItem elimina una línea.
func (uc *UseCase) RemoveRequestItem(ctx context.Context, id, itemID string) error {
	return uc.apply(ctx, "remove_item", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.RemoveRequestItem(s, env, id, itemID)
	})
}

// DuplicateRequest copia la Solicitud como BORRADOR nuevo y devuelve su ID.
func (uc *UseCase) DuplicateRequest(ctx context.Context, id string) (string, error) {
	var newID string
	err := uc.apply(ctx, "duplicate_request", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		next, created, err := lifecycle.DuplicateRequest(s, env, id)
		newID = created
		return next, err
	})
	return newID, err
}

// DeleteRequest elimina la Solicitud.
func (uc *UseCase) DeleteRequest(ctx context.Context, id string) error {
	return uc.apply(ctx, "delete_request", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.DeleteRequest(s, env, id)
	})
}

// AssignPI consume la Solicitud y crea el pedido ORD-<id>. Devuelve el ID del pedido.
func (uc *UseCase) AssignPI(ctx context.Context, id, pi string) (string, error) {
	err := uc.apply(ctx, "assign_pi", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.AssignPI(s, env, id, pi)
	})
	if err != nil {
		return "", err
	}
	orderID := "ORD-" + id
	uc.log.Info().Str("request_id", id).Str("order_id", orderID).Msg("PI asignada")
	return orderID, nil
}
