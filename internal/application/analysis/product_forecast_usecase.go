package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// DefaultForecastHorizon días proyectados cuando el consumidor no pide otro.
const DefaultForecastHorizon = 10

const dateLayout = "2006-01-02"

// ProductForecastUseCase compara los dos modelos de demanda sobre un producto
// puntual: historia diaria, pronóstico estacional con bandas, pronóstico ARIMA
// y métricas in-sample de ambos, lado a lado.
type ProductForecastUseCase struct {
	history repository.HistoryRepository
	log     *logger.Logger

	Now func() time.Time
}

// NewProductForecastUseCase construye el caso de uso de pronóstico puntual.
func NewProductForecastUseCase(history repository.HistoryRepository, log *logger.Logger) *ProductForecastUseCase {
	return &ProductForecastUseCase{history: history, log: log, Now: time.Now}
}

// ProductForecastOptions parámetros del pronóstico puntual. Start y End acotan
// el historial (inclusive en ambos extremos); en cero no filtran.
type ProductForecastOptions struct {
	Horizon int
	Start   time.Time
	End     time.Time
}

// Forecast pronostica el producto pedido. Devuelve domain.ErrProductNotFound
// si el id no existe y domain.ErrInsufficientData si el historial filtrado no
// alcanza para el camino estadístico.
func (uc *ProductForecastUseCase) Forecast(ctx context.Context, productID int64, opts ProductForecastOptions) (*dto.ProductForecastDTO, error) {
	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}

	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return nil, err
	}

	product, ok := snap.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	series := forecast.DailySeries(snap.salesByProduct[productID])
	series = filterRange(series, opts.Start, opts.End)

	seasonal, err := forecast.FitSeasonal(series)
	if err != nil {
		return nil, err
	}
	arima, err := forecast.FitARIMA(forecast.Values(series))
	if err != nil {
		return nil, err
	}

	out := &dto.ProductForecastDTO{
		ProductID:   productID,
		ProductName: product.Name,
	}

	for _, p := range series {
		out.History = append(out.History, dto.SeriesPointDTO{
			Date:  p.Day.Format(dateLayout),
			Value: p.Qty,
		})
	}

	for _, p := range seasonal.Forecast(horizon) {
		out.Seasonal = append(out.Seasonal, dto.ForecastPointDTO{
			Date:  p.Day.Format(dateLayout),
			Value: round2(p.Value),
			Lower: round2(p.Lower),
			Upper: round2(p.Upper),
		})
	}

	last := seasonal.LastObserved()
	for k, v := range arima.Forecast(horizon) {
		out.ARIMA = append(out.ARIMA, dto.SeriesPointDTO{
			Date:  last.AddDate(0, 0, k+1).Format(dateLayout),
			Value: round2(v),
		})
	}

	sMAE, sRMSE := seasonal.Metrics()
	aMAE, aRMSE := arima.Metrics()
	order := arima.Order()
	out.Metrics = []dto.ModelMetricsDTO{
		{Model: "seasonal", MAE: round2(sMAE), RMSE: round2(sRMSE)},
		{Model: fmt.Sprintf("arima(%d,%d,%d)", order.P, order.D, order.Q), MAE: round2(aMAE), RMSE: round2(aRMSE)},
	}

	uc.log.Debug().
		Int64("product_id", productID).
		Int("history_points", len(series)).
		Int("horizon", horizon).
		Msg("pronóstico puntual generado")

	return out, nil
}

// filterRange acota la serie a [start, end]. Extremos en cero no filtran.
func filterRange(points []forecast.Point, start, end time.Time) []forecast.Point {
	if start.IsZero() && end.IsZero() {
		return points
	}
	out := make([]forecast.Point, 0, len(points))
	for _, p := range points {
		if !start.IsZero() && p.Day.Before(start) {
			continue
		}
		if !end.IsZero() && p.Day.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
