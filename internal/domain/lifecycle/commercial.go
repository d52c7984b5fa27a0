package lifecycle

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/derive"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// SetTargets reemplaza las metas del periodo. Metas en nil quedan sin definir.
func SetTargets(s State, period string, t entity.PeriodTargets) (State, error) {
	if !derive.ValidPeriod(period) {
		return s, fmt.Errorf("periodo %q: %w", period, domain.ErrInvalidInput)
	}
	if t.OrdersClosedTarget != nil && *t.OrdersClosedTarget < 0 {
		return s, fmt.Errorf("meta de órdenes negativa: %w", domain.ErrInvalidInput)
	}
	if t.KgClosedTarget != nil && t.KgClosedTarget.IsNegative() {
		return s, fmt.Errorf("meta de kg negativa: %w", domain.ErrInvalidInput)
	}
	if t.OtifTargetPct != nil && (t.OtifTargetPct.IsNegative() || t.OtifTargetPct.GreaterThan(hundred)) {
		return s, fmt.Errorf("meta OTIF fuera de 0..100: %w", domain.ErrInvalidInput)
	}

	next := s.Targets.Clone()
	if t.Empty() {
		delete(next.TargetsByMonth, period)
	} else {
		next.TargetsByMonth[period] = t
	}
	s.Targets = next
	s.mark(ChangedTargets)
	return s, nil
}

// ClearTargets elimina las metas del periodo.
func ClearTargets(s State, period string) State {
	if _, ok := s.Targets.TargetsByMonth[period]; !ok {
		return s
	}
	next := s.Targets.Clone()
	delete(next.TargetsByMonth, period)
	s.Targets = next
	s.mark(ChangedTargets)
	return s
}

// ClaimPatch edición de un reclamo abierto.
type ClaimPatch struct {
	Status            *entity.ClaimStatus
	Severity          *string
	Description       *string
	ReceivedDate      *string
	ResponsiblePerson *string
}

// UpdateClaim edita un reclamo. El paso a OK solo se hace con CloseClaim.
func UpdateClaim(s State, env Env, id string, patch ClaimPatch) (State, error) {
	i := indexOfClaim(s.Claims, id)
	if i < 0 {
		return s, fmt.Errorf("reclamo %s: %w", id, domain.ErrNotFound)
	}
	next := s.Claims[i]
	if patch.Status != nil {
		switch *patch.Status {
		case entity.ClaimPendingSend, entity.ClaimPendingResponse:
			next.Status = *patch.Status
		default:
			return s, fmt.Errorf("estado de reclamo %q: %w", *patch.Status, domain.ErrInvalidStatus)
		}
	}
	if patch.Severity != nil {
		switch *patch.Severity {
		case entity.SeverityLow, entity.SeverityMed, entity.SeverityHigh:
			next.Severity = *patch.Severity
		default:
			return s, fmt.Errorf("severidad %q: %w", *patch.Severity, domain.ErrInvalidInput)
		}
	}
	if patch.ReceivedDate != nil && *patch.ReceivedDate != "" {
		if _, ok := derive.ParseDate(*patch.ReceivedDate, env.loc()); !ok {
			return s, fmt.Errorf("fecha de recepción %q: %w", *patch.ReceivedDate, domain.ErrInvalidInput)
		}
	}
	if patch.ReceivedDate != nil {
		next.ReceivedDate = *patch.ReceivedDate
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.ResponsiblePerson != nil {
		next.ResponsiblePerson = *patch.ResponsiblePerson
	}

	entry := env.audit(entity.ModuleClaims, entity.AuditEntityClaim, id, ActionUpdated, "",
		fmt.Sprintf("Reclamo actualizado (%s).", next.Status))
	s.Claims = replaceAt(s.Claims, i, next)
	s.mark(ChangedClaims)
	s.record(entry)
	return s, nil
}

// CloseClaim cierra el reclamo con motivo y, opcionalmente, nota de crédito.
func CloseClaim(s State, env Env, id, reason string, creditNote bool, amount *decimal.Decimal) (State, error) {
	i := indexOfClaim(s.Claims, id)
	if i < 0 {
		return s, fmt.Errorf("reclamo %s: %w", id, domain.ErrNotFound)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return s, domain.ErrClaimCloseReason
	}
	if creditNote && (amount == nil || !amount.IsPositive()) {
		return s, domain.ErrCreditNoteAmount
	}

	next := s.Claims[i]
	next.Status = entity.ClaimOK
	next.CloseReason = reason
	next.CreditNote = creditNote
	next.CreditNoteAmount = nil
	if creditNote {
		a := *amount
		next.CreditNoteAmount = &a
	}
	next.ClosedDate = env.today()

	entry := env.audit(entity.ModuleClaims, entity.AuditEntityClaim, id, ActionClaimClosed, "", "Reclamo cerrado.")
	entry.Note = reason
	s.Claims = replaceAt(s.Claims, i, next)
	s.mark(ChangedClaims)
	s.record(entry)
	return s, nil
}
