package console

import (
	"context"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// Filters filtro global vigente.
func (uc *UseCase) Filters(_ context.Context) entity.GlobalFilters {
	return uc.Snapshot().Filters
}

// SetFilters reemplaza el filtro global. Los filtros no se persisten.
func (uc *UseCase) SetFilters(ctx context.Context, f entity.GlobalFilters) error {
	return uc.apply(ctx, "set_filters", func(s lifecycle.State, _ lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.SetFilters(s, f), nil
	})
}

// SetTargets reemplaza las metas del periodo.
func (uc *UseCase) SetTargets(ctx context.Context, period string, in dto.TargetsRequest) error {
	return uc.apply(ctx, "set_targets", func(s lifecycle.State, _ lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.SetTargets(s, period, in.Targets())
	})
}

// ClearTargets elimina las metas del periodo.
func (uc *UseCase) ClearTargets(ctx context.Context, period string) error {
	return uc.apply(ctx, "clear_targets", func(s lifecycle.State, _ lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.ClearTargets(s, period), nil
	})
}

// ListClaims reclamos.
func (uc *UseCase) ListClaims(_ context.Context) []entity.Claim {
	return uc.Snapshot().Claims
}

// UpdateClaim edita un reclamo abierto.
func (uc *UseCase) UpdateClaim(ctx context.Context, id string, in dto.UpdateClaimRequest) error {
	return uc.apply(ctx, "update_claim", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.UpdateClaim(s, env, id, in.Patch())
	})
}

// CloseClaim cierra el reclamo con motivo y nota de crédito opcional.
func (uc *UseCase) CloseClaim(ctx context.Context, id string, in dto.CloseClaimRequest) error {
	return uc.apply(ctx, "close_claim", func(s lifecycle.State, env lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.CloseClaim(s, env, id, in.Reason, in.CreditNote, in.CreditNoteAmount)
	})
}
