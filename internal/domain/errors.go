package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidPI        = errors.New("formato de PI inválido: se espera ALNUM{4,10} o ALNUM{4,10}-ALNUM{4,10} (ej: 12345 o 1234-12345)")
	ErrInvalidStatus    = errors.New("estado inválido")
	ErrDispatchBlocked  = errors.New("despacho bloqueado: pedido atrasado sin razón de atraso o responsable")
	ErrClaimCloseReason = errors.New("el cierre de un reclamo requiere motivo")
	ErrCreditNoteAmount = errors.New("la nota de crédito requiere un monto mayor a 0")
)
