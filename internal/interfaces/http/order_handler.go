package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
)

// OrderHandler maneja el backlog de pedidos.
type OrderHandler struct {
	uc       *console.UseCase
	validate *validator.Validate
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *console.UseCase, v *validator.Validate) *OrderHandler {
	return &OrderHandler{uc: uc, validate: v}
}

// List godoc
// @Summary      Backlog de pedidos
// @Description  Filtrado y ordenado por prioridad; incluye semáforo de ETD y si se puede despachar.
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.OrderView]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.ListOrders(c.UserContext())))
}

// MoveToPriority godoc
// @Summary      Cambiar prioridad
// @Description  La posición se acota a 1..N y el resto se renumbera.
// @Tags         orders
// @Accept       json
// @Param        id    path  string               true  "ID del pedido"
// @Param        body  body  dto.PriorityRequest  true  "nueva posición"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/priority [post]
func (h *OrderHandler) MoveToPriority(c *fiber.Ctx) error {
	var in dto.PriorityRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.MoveToPriority(c.UserContext(), c.Params("id"), *in.Priority); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateShipping godoc
// @Summary      Editar consignee / notify
// @Tags         orders
// @Accept       json
// @Param        id    path  string               true  "ID del pedido"
// @Param        body  body  dto.ShippingRequest  true  "consignee, notify"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/shipping [patch]
func (h *OrderHandler) UpdateShipping(c *fiber.Ctx) error {
	var in dto.ShippingRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateShipping(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateDelay godoc
// @Summary      Editar atraso
// @Tags         orders
// @Accept       json
// @Param        id    path  string            true  "ID del pedido"
// @Param        body  body  dto.DelayRequest  true  "delayReasonCode, delayOwner, delayComment"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delay [patch]
func (h *OrderHandler) UpdateDelay(c *fiber.Ctx) error {
	var in dto.DelayRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateDelay(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Dispatch godoc
// @Summary      Despachar pedido
// @Description  Mueve el pedido a Tránsito. Un pedido atrasado exige razón y responsable.
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      201  {object}  entity.Shipment
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatch [post]
func (h *OrderHandler) Dispatch(c *fiber.Ctx) error {
	shipment, err := h.uc.Dispatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}
