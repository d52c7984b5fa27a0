package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
)

// KPIHandler maneja el tablero, los KPI comerciales y sus metas.
type KPIHandler struct {
	uc       *appanalytics.DashboardUseCase
	console  *console.UseCase
	validate *validator.Validate
}

// NewKPIHandler construye el handler.
func NewKPIHandler(uc *appanalytics.DashboardUseCase, consoleUC *console.UseCase, v *validator.Validate) *KPIHandler {
	return &KPIHandler{uc: uc, console: consoleUC, validate: v}
}

// GetDashboard godoc
// @Summary      Tablero de operación
// @Description  Kg pendientes, pedidos en riesgo, llegadas próximas y cierres del mes.
// @Tags         kpi
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kpi/dashboard [get]
func (h *KPIHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

// GetCommercial godoc
// @Summary      KPI comerciales del periodo
// @Tags         kpi
// @Produce      json
// @Param        period  query     string  false  "YYYY-MM. Vacío = mes en curso."
// @Success      200     {object}  dto.CommercialResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/kpi/commercial [get]
func (h *KPIHandler) GetCommercial(c *fiber.Ctx) error {
	q, e := h.periodQuery(c)
	if e != nil {
		return badRequest(c, e)
	}
	res, err := h.uc.GetCommercial(c.UserContext(), q.Period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// CommercialReport godoc
// @Summary      Informe PDF de KPI comerciales
// @Tags         kpi
// @Produce      application/pdf
// @Param        period  query  string  false  "YYYY-MM. Vacío = mes en curso."
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/kpi/commercial/report.pdf [get]
func (h *KPIHandler) CommercialReport(c *fiber.Ctx) error {
	q, e := h.periodQuery(c)
	if e != nil {
		return badRequest(c, e)
	}
	pdf, name, err := h.uc.CommercialReportPDF(c.UserContext(), q.Period)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(pdf)
}

// SetTargets godoc
// @Summary      Definir metas del periodo
// @Tags         kpi
// @Accept       json
// @Param        period  path  string              true  "YYYY-MM"
// @Param        body    body  dto.TargetsRequest  true  "metas; ausente = sin definir"
// @Success      204
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/kpi/targets/{period} [put]
func (h *KPIHandler) SetTargets(c *fiber.Ctx) error {
	period := c.Params("period")
	if e := validate(h.validate, dto.PeriodQuery{Period: period}); e != nil || period == "" {
		return badRequest(c, &dto.ErrorResponse{Code: "VALIDATION", Message: "periodo inválido, se espera YYYY-MM"})
	}
	var in dto.TargetsRequest
	if e := bindJSON(c, h.validate, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.console.SetTargets(c.UserContext(), period, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearTargets godoc
// @Summary      Eliminar metas del periodo
// @Tags         kpi
// @Param        period  path  string  true  "YYYY-MM"
// @Success      204
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/kpi/targets/{period} [delete]
func (h *KPIHandler) ClearTargets(c *fiber.Ctx) error {
	period := c.Params("period")
	if e := validate(h.validate, dto.PeriodQuery{Period: period}); e != nil || period == "" {
		return badRequest(c, &dto.ErrorResponse{Code: "VALIDATION", Message: "periodo inválido, se espera YYYY-MM"})
	}
	if err := h.console.ClearTargets(c.UserContext(), period); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *KPIHandler) periodQuery(c *fiber.Ctx) (dto.PeriodQuery, *dto.ErrorResponse) {
	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return q, &dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"}
	}
	return q, validate(h.validate, q)
}
