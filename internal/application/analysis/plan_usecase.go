package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// PlanHorizonDays horizonte del plan de demanda agregado.
const PlanHorizonDays = 30

// PlanUseCase arma el plan de demanda a 30 días: pronostica la venta total de
// la tienda y la reparte entre productos según su peso histórico de ventas,
// proyectando faltantes, ingresos, margen y desbordes de capacidad.
type PlanUseCase struct {
	history repository.HistoryRepository
	log     *logger.Logger

	Now func() time.Time
}

// NewPlanUseCase construye el caso de uso del plan de demanda.
func NewPlanUseCase(history repository.HistoryRepository, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{history: history, log: log, Now: time.Now}
}

// BuildPlan genera el plan. Con historial agregado insuficiente devuelve un
// resumen vacío (no es un error: simplemente no hay nada que planificar).
// Todo el dinero va en decimal; float64 queda solo para cantidades.
func (uc *PlanUseCase) BuildPlan(ctx context.Context) (*dto.PlanSummaryDTO, error) {
	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return nil, err
	}

	summary := &dto.PlanSummaryDTO{
		HorizonDays:  PlanHorizonDays,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}

	model, err := forecast.FitSeasonal(forecast.DailySeries(snap.sales))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			uc.log.Warn().Msg("historial agregado insuficiente para el plan de demanda")
			return summary, nil
		}
		return nil, err
	}

	var totalForecast float64
	for _, p := range model.Forecast(PlanHorizonDays) {
		totalForecast += p.Value
	}
	summary.TotalForecastQty = round2(totalForecast)

	var totalSold float64
	for _, qty := range snap.soldTotal {
		totalSold += qty
	}

	for _, pid := range snap.order {
		product := snap.products[pid]

		var weight float64
		if totalSold > 0 {
			weight = snap.soldTotal[pid] / totalSold
		}
		forecastQty := weight * totalForecast
		stock := snap.currentStock(pid)

		shortage := forecastQty - stock
		if shortage < 0 {
			shortage = 0
		}

		qty := decimal.NewFromFloat(forecastQty)
		price := product.EffectivePrice(snap.today)
		revenue := qty.Mul(price).Round(2)
		cost := qty.Mul(product.CostPrice).Round(2)
		profit := revenue.Sub(cost)

		item := dto.PlanItemDTO{
			ProductID:        pid,
			ProductName:      product.Name,
			ForecastedQty:    round2(forecastQty),
			CurrentStock:     stock,
			Shortage:         round2(shortage),
			EffectivePrice:   price,
			PotentialRevenue: revenue,
			PotentialCost:    cost,
			PotentialProfit:  profit,
			ProjectedVolume:  round2(forecastQty * product.VolumeOrDefault()),
		}

		if unit, _, ok := snap.storageFor(pid); ok && unit.MaxCapacity > 0 {
			capacity := unit.MaxCapacity
			item.StorageCapacity = &capacity
			item.VolumeOverload = forecastQty*product.VolumeOrDefault() > capacity
		}

		summary.TotalRevenue = summary.TotalRevenue.Add(revenue)
		summary.TotalProfit = summary.TotalProfit.Add(profit)
		summary.TotalShortage += shortage
		if item.Shortage > 0 {
			summary.CriticalCount++
		}
		if item.VolumeOverload {
			summary.OverloadCount++
		}
		summary.Items = append(summary.Items, item)
	}
	summary.TotalShortage = round2(summary.TotalShortage)

	uc.log.Info().
		Float64("total_forecast", summary.TotalForecastQty).
		Int("critical", summary.CriticalCount).
		Int("overload", summary.OverloadCount).
		Msg("plan de demanda generado")

	return summary, nil
}
