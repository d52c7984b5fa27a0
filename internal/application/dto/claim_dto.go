package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mf-comercial/internal/domain/entity"
	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// UpdateClaimRequest edición de un reclamo abierto. El cierre va por CloseClaimRequest.
type UpdateClaimRequest struct {
	Status            *string `json:"status"`
	Severity          *string `json:"severity" validate:"omitempty,oneof=LOW MED HIGH"`
	Description       *string `json:"description" validate:"omitempty,max=1000"`
	ReceivedDate      *string `json:"receivedDate"`
	ResponsiblePerson *string `json:"responsiblePerson" validate:"omitempty,max=200"`
}

// Patch convierte la entrada al patch de dominio.
func (r UpdateClaimRequest) Patch() lifecycle.ClaimPatch {
	p := lifecycle.ClaimPatch{
		Severity:          r.Severity,
		Description:       r.Description,
		ReceivedDate:      r.ReceivedDate,
		ResponsiblePerson: r.ResponsiblePerson,
	}
	if r.Status != nil {
		st := entity.ClaimStatus(*r.Status)
		p.Status = &st
	}
	return p
}

// CloseClaimRequest cierre de un reclamo.
type CloseClaimRequest struct {
	Reason           string           `json:"reason" validate:"required,max=500"`
	CreditNote       bool             `json:"creditNote"`
	CreditNoteAmount *decimal.Decimal `json:"creditNoteAmount"`
}
