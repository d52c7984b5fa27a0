package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// ConsoleHandler endpoints transversales: filtro global, bitácora y reinicio.
type ConsoleHandler struct {
	uc       *console.UseCase
	validate *validator.Validate
}

// NewConsoleHandler construye el handler.
func NewConsoleHandler(uc *console.UseCase, v *validator.Validate) *ConsoleHandler {
	return &ConsoleHandler{uc: uc, validate: v}
}

// GetFilters godoc
// @Summary      Filtro global vigente
// @Tags         console
// @Produce      json
// @Success      200  {object}  entity.GlobalFilters
// @Router       /api/filters [get]
func (h *ConsoleHandler) GetFilters(c *fiber.Ctx) error {
	return c.JSON(h.uc.Filters(c.UserContext()))
}

// SetFilters godoc
// @Summary      Reemplazar filtro global
// @Description  Texto libre por cliente, producto, especie, calibre y país. No se persiste.
// @Tags         console
// @Accept       json
// @Param        body  body  entity.GlobalFilters  true  "filtros"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/filters [put]
func (h *ConsoleHandler) SetFilters(c *fiber.Ctx) error {
	var in entity.GlobalFilters
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.uc.SetFilters(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Bitácora global
// @Tags         console
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.AuditEntry]
// @Router       /api/history [get]
func (h *ConsoleHandler) History(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.History(c.UserContext())))
}

// Reset godoc
// @Summary      Reiniciar consola
// @Description  Restaura los datos de ejemplo y descarta todos los cambios.
// @Tags         console
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reset [post]
func (h *ConsoleHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
