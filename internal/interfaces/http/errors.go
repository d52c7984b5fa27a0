package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain"
)

// Texto que ve el usuario cuando el despacho de un pedido atrasado queda bloqueado.
const msgDispatchBlocked = "Orden atrasada: debes completar Razón de atraso y Responsable antes de despachar."

// writeError traduce los errores de dominio a su código HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidPI):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PI", Message: domain.ErrInvalidPI.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrClaimCloseReason),
		errors.Is(err, domain.ErrCreditNoteAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDispatchBlocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DISPATCH_BLOCKED", Message: msgDispatchBlocked})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// bindJSON parsea el cuerpo (vacío se acepta) y lo valida.
// Devuelve el cuerpo de error a responder con 400, o nil.
func bindJSON(c *fiber.Ctx, v *validator.Validate, in any) *dto.ErrorResponse {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(in); err != nil {
			return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
		}
	}
	return validate(v, in)
}

func validate(v *validator.Validate, in any) *dto.ErrorResponse {
	if err := v.Struct(in); err != nil {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: dto.ValidationFields(err)}
	}
	return nil
}

func badRequest(c *fiber.Ctx, e *dto.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(e)
}
