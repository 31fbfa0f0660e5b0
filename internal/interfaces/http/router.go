package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-advisor/internal/application/analysis"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssistantUC       *analysis.AssistantUseCase
	AdvisorUC         *analysis.AdvisorUseCase
	ReorderUC         *analysis.ReorderUseCase
	PlanUC            *analysis.PlanUseCase
	ProductForecastUC *analysis.ProductForecastUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	group := api.Group("/analysis")
	handler := NewAnalysisHandler(deps)
	group.Get("/forecasts", handler.Forecasts)
	group.Get("/advisories", handler.Advisories)
	group.Get("/reorders", handler.Reorders)
	group.Get("/plan", handler.Plan)
	group.Get("/products/:id/forecast", handler.ProductForecast)
}
