package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-advisor/internal/application/analysis"
	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain"
)

// AnalysisHandler expone las corridas del motor de análisis como endpoints
// JSON de solo lectura.
type AnalysisHandler struct {
	assistant       *analysis.AssistantUseCase
	advisor         *analysis.AdvisorUseCase
	reorder         *analysis.ReorderUseCase
	plan            *analysis.PlanUseCase
	productForecast *analysis.ProductForecastUseCase
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(deps RouterDeps) *AnalysisHandler {
	return &AnalysisHandler{
		assistant:       deps.AssistantUC,
		advisor:         deps.AdvisorUC,
		reorder:         deps.ReorderUC,
		plan:            deps.PlanUC,
		productForecast: deps.ProductForecastUC,
	}
}

// Forecasts corre el análisis de demanda del catálogo completo.
// Query params: trends (bool, default false), horizon (días, default 7).
func (h *AnalysisHandler) Forecasts(c *fiber.Ctx) error {
	opts := analysis.AssistantOptions{
		TrendsEnabled: c.QueryBool("trends", false),
		Horizon:       c.QueryInt("horizon", 0),
	}

	results, err := h.assistant.RunAnalysis(c.Context(), opts)
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(results)
}

// Advisories corre el motor de avisos operativos.
func (h *AnalysisHandler) Advisories(c *fiber.Ctx) error {
	results, err := h.advisor.Analyze(c.Context())
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(results)
}

// Reorders calcula la lista de reposición.
// Query params: min_days (umbral de cobertura, default 5).
func (h *AnalysisHandler) Reorders(c *fiber.Ctx) error {
	results, err := h.reorder.ComputeAdvice(c.Context(), c.QueryInt("min_days", 0))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(results)
}

// Plan genera el plan de demanda a 30 días.
func (h *AnalysisHandler) Plan(c *fiber.Ctx) error {
	summary, err := h.plan.BuildPlan(c.Context())
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(summary)
}

// ProductForecast compara los dos modelos sobre un producto puntual.
// Query params: horizon (default 10), start y end (YYYY-MM-DD, opcionales).
func (h *AnalysisHandler) ProductForecast(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "id de producto inválido",
		})
	}

	opts := analysis.ProductForecastOptions{
		Horizon: c.QueryInt("horizon", 0),
	}
	if opts.Start, err = parseQueryDate(c.Query("start")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "start debe ser YYYY-MM-DD",
		})
	}
	if opts.End, err = parseQueryDate(c.Query("end")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "end debe ser YYYY-MM-DD",
		})
	}

	result, err := h.productForecast.Forecast(c.Context(), productID, opts)
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(result)
}

// analysisError traduce los errores de dominio a códigos HTTP.
func analysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "PRODUCT_NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_DATA", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORE_UNAVAILABLE", Message: "el almacén de históricos no está disponible",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL_ERROR", Message: "error interno del motor de análisis",
		})
	}
}

// parseQueryDate interpreta un query param de fecha. Vacío devuelve cero.
func parseQueryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
