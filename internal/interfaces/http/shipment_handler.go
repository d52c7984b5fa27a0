package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
)

// ShipmentHandler maneja embarques en tránsito y entregados.
type ShipmentHandler struct {
	uc       *console.UseCase
	validate *validator.Validate
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *console.UseCase, v *validator.Validate) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, validate: v}
}

// List godoc
// @Summary      Embarques en tránsito
// @Description  Filtrados y ordenados por ETA; incluye tramo de ETA y días restantes.
// @Tags         shipments
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ShipmentView]
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.ListShipments(c.UserContext())))
}

// Update godoc
// @Summary      Editar embarque
// @Tags         shipments
// @Accept       json
// @Param        id    path  string                     true  "ID del embarque"
// @Param        body  body  dto.UpdateShipmentRequest  true  "booking, etd, eta, precio, margen, mensaje"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [patch]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShipmentRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateShipment(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleDocs godoc
// @Summary      Avanzar estado de documentos
// @Description  PEND → DRAFT ENVIADO → OK → PEND.
// @Tags         shipments
// @Produce      json
// @Param        id   path      string  true  "ID del embarque"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/docs/toggle [post]
func (h *ShipmentHandler) ToggleDocs(c *fiber.Ctx) error {
	status, err := h.uc.ToggleDocs(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"docsStatus": status})
}

// ConfirmDelivered godoc
// @Summary      Confirmar entrega
// @Tags         shipments
// @Param        id   path  string  true  "ID del embarque"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/deliver [post]
func (h *ShipmentHandler) ConfirmDelivered(c *fiber.Ctx) error {
	if err := h.uc.ConfirmDelivered(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDelivered godoc
// @Summary      Entregados
// @Tags         shipments
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.DeliveredRecord]
// @Router       /api/delivered [get]
func (h *ShipmentHandler) ListDelivered(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.ListDelivered(c.UserContext())))
}
