package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
)

// RequestHandler maneja la bandeja de Solicitudes.
type RequestHandler struct {
	uc       *console.UseCase
	validate *validator.Validate
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *console.UseCase, v *validator.Validate) *RequestHandler {
	return &RequestHandler{uc: uc, validate: v}
}

// List godoc
// @Summary      Listar Solicitudes
// @Description  Aplica el filtro global y ordena por última actualización (más reciente primero).
// @Tags         requests
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.OrderRequest]
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.ListRequests(c.UserContext())))
}

// GetByID godoc
// @Summary      Obtener Solicitud
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "ID de la Solicitud"
// @Success      200  {object}  entity.OrderRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, ok := h.uc.GetRequest(c.UserContext(), c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	return c.JSON(req)
}

// Template godoc
// @Summary      Plantilla de Solicitud nueva
// @Description  Solicitud en blanco con una línea vacía y el mes de embarque en curso. No se guarda.
// @Tags         requests
// @Produce      json
// @Success      200  {object}  entity.OrderRequest
// @Router       /api/requests/template [get]
func (h *RequestHandler) Template(c *fiber.Ctx) error {
	return c.JSON(h.uc.RequestTemplate(c.UserContext()))
}

// Save godoc
// @Summary      Guardar Solicitud
// @Description  Inserta o reemplaza la Solicitud con el estado indicado (BORRADOR o ENVIADA).
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveRequestRequest  true  "status + request"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveRequestRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	id, err := h.uc.SaveRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update godoc
// @Summary      Editar Solicitud
// @Description  Edición parcial; los campos ausentes no cambian.
// @Tags         requests
// @Accept       json
// @Param        id    path  string                     true  "ID de la Solicitud"
// @Param        body  body  dto.UpdateRequestRequest   true  "campos a cambiar + mensaje opcional"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [patch]
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRequestRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateRequest(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStatus godoc
// @Summary      Cambiar estado de Solicitud
// @Tags         requests
// @Accept       json
// @Param        id    path  string                    true  "ID de la Solicitud"
// @Param        body  body  dto.RequestStatusRequest  true  "nuevo estado (PI CREADA solo vía asignación de PI)"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [post]
func (h *RequestHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.RequestStatusRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.SetRequestStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary      Agregar línea
// @Description  Cuerpo vacío agrega una línea en blanco.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path      string           true   "ID de la Solicitud"
// @Param        body  body      dto.ItemRequest  false  "valores iniciales de la línea"
// @Success      201   {object}  dto.IDResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items [post]
func (h *RequestHandler) AddItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	itemID, err := h.uc.AddRequestItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: itemID})
}

// UpdateItem godoc
// @Summary      Editar línea
// @Tags         requests
// @Accept       json
// @Param        id      path  string           true  "ID de la Solicitud"
// @Param        itemId  path  string           true  "ID de la línea"
// @Param        body    body  dto.ItemRequest  true  "campos a cambiar"
// @Success      204
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items/{itemId} [patch]
func (h *RequestHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.UpdateRequestItem(c.UserContext(), c.Params("id"), c.Params("itemId"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveItem godoc
// @Summary      Quitar línea
// @Description  La Solicitud conserva siempre al menos una línea.
// @Tags         requests
// @Param        id      path  string  true  "ID de la Solicitud"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items/{itemId} [delete]
func (h *RequestHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveRequestItem(c.UserContext(), c.Params("id"), c.Params("itemId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Duplicate godoc
// @Summary      Duplicar Solicitud
// @Description  Copia como BORRADOR, sin PI ni referencias ERP.
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "ID de la Solicitud"
// @Success      201  {object}  dto.IDResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/duplicate [post]
func (h *RequestHandler) Duplicate(c *fiber.Ctx) error {
	id, err := h.uc.DuplicateRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// AssignPI godoc
// @Summary      Asignar PI
// @Description  Convierte la Solicitud en pedido del backlog (ORD-<id>) con prioridad al final.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID de la Solicitud"
// @Param        body  body      dto.AssignPIRequest  true  "PI (12345 o 1234-12345)"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/pi [post]
func (h *RequestHandler) AssignPI(c *fiber.Ctx) error {
	var in dto.AssignPIRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orderID, err := h.uc.AssignPI(c.UserContext(), c.Params("id"), in.PI)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: orderID})
}

// Delete godoc
// @Summary      Eliminar Solicitud
// @Tags         requests
// @Param        id   path  string  true  "ID de la Solicitud"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteRequest(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
