package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
)

// ClaimHandler maneja los reclamos de clientes.
type ClaimHandler struct {
	uc       *console.UseCase
	validate *validator.Validate
}

// NewClaimHandler construye el handler.
func NewClaimHandler(uc *console.UseCase, v *validator.Validate) *ClaimHandler {
	return &ClaimHandler{uc: uc, validate: v}
}

// List godoc
// @Summary      Listar reclamos
// @Tags         claims
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Claim]
// @Router       /api/claims [get]
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.ListClaims(c.UserContext())))
}

// Update godoc
// @Summary      Editar reclamo
// @Tags         claims
// @Accept       json
// @Param        id    path  string                  true  "ID del reclamo"
// @Param        body  body  dto.UpdateClaimRequest  true  "campos a cambiar"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/claims/{id} [patch]
func (h *ClaimHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClaimRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateClaim(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close godoc
// @Summary      Cerrar reclamo
// @Description  Requiere motivo; la nota de crédito exige monto mayor a 0.
// @Tags         claims
// @Accept       json
// @Param        id    path  string                 true  "ID del reclamo"
// @Param        body  body  dto.CloseClaimRequest  true  "reason, creditNote, creditNoteAmount"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/claims/{id}/close [post]
func (h *ClaimHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseClaimRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CloseClaim(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
