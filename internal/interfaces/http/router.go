package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/application/console"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ConsoleUC   *console.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	Validate    *validator.Validate
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware())

	// Solicitudes
	requests := api.Group("/requests")
	requestHandler := NewRequestHandler(deps.ConsoleUC, deps.Validate)
	requests.Get("/", requestHandler.List)
	requests.Post("/", requestHandler.Save)
	requests.Get("/template", requestHandler.Template)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Patch("/:id", requestHandler.Update)
	requests.Delete("/:id", requestHandler.Delete)
	requests.Post("/:id/status", requestHandler.SetStatus)
	requests.Post("/:id/items", requestHandler.AddItem)
	requests.Patch("/:id/items/:itemId", requestHandler.UpdateItem)
	requests.Delete("/:id/items/:itemId", requestHandler.RemoveItem)
	requests.Post("/:id/duplicate", requestHandler.Duplicate)
	requests.Post("/:id/pi", requestHandler.AssignPI)

	// Backlog
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.ConsoleUC, deps.Validate)
	orders.Get("/", orderHandler.List)
	orders.Post("/:id/priority", orderHandler.MoveToPriority)
	orders.Patch("/:id/shipping", orderHandler.UpdateShipping)
	orders.Patch("/:id/delay", orderHandler.UpdateDelay)
	orders.Post("/:id/dispatch", orderHandler.Dispatch)

	// Tránsito y entregados
	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ConsoleUC, deps.Validate)
	shipments.Get("/", shipmentHandler.List)
	shipments.Patch("/:id", shipmentHandler.Update)
	shipments.Post("/:id/docs/toggle", shipmentHandler.ToggleDocs)
	shipments.Post("/:id/deliver", shipmentHandler.ConfirmDelivered)
	api.Get("/delivered", shipmentHandler.ListDelivered)

	// KPI
	kpiGroup := api.Group("/kpi")
	kpiHandler := NewKPIHandler(deps.DashboardUC, deps.ConsoleUC, deps.Validate)
	kpiGroup.Get("/dashboard", kpiHandler.GetDashboard)
	kpiGroup.Get("/commercial", kpiHandler.GetCommercial)
	kpiGroup.Get("/commercial/report.pdf", kpiHandler.CommercialReport)
	kpiGroup.Put("/targets/:period", kpiHandler.SetTargets)
	kpiGroup.Delete("/targets/:period", kpiHandler.ClearTargets)

	// Reclamos
	claims := api.Group("/claims")
	claimHandler := NewClaimHandler(deps.ConsoleUC, deps.Validate)
	claims.Get("/", claimHandler.List)
	claims.Patch("/:id", claimHandler.Update)
	claims.Post("/:id/close", claimHandler.Close)

	consoleHandler := NewConsoleHandler(deps.ConsoleUC, deps.Validate)
	api.Get("/filters", consoleHandler.GetFilters)
	api.Put("/filters", consoleHandler.SetFilters)
	api.Get("/history", consoleHandler.History)
	api.Post("/reset", consoleHandler.Reset)
}
