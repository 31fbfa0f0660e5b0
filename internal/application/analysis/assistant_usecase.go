package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/application/ports"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// DefaultAssistantHorizon días que promedia el pronóstico del análisis masivo.
const DefaultAssistantHorizon = 7

// AssistantUseCase corre el análisis de demanda sobre todo el catálogo:
// pronóstico estadístico por producto, ajuste por tendencia externa y
// horizonte de agotamiento de stock.
type AssistantUseCase struct {
	history repository.HistoryRepository
	trends  ports.TrendService
	log     *logger.Logger

	// Now inyectable para fijar el "hoy" del análisis en tests.
	Now func() time.Time
}

// NewAssistantUseCase construye el caso de uso. trends puede ser nil: el
// multiplicador queda neutro.
func NewAssistantUseCase(
	history repository.HistoryRepository,
	trends ports.TrendService,
	log *logger.Logger,
) *AssistantUseCase {
	return &AssistantUseCase{
		history: history,
		trends:  trends,
		log:     log,
		Now:     time.Now,
	}
}

// AssistantOptions parámetros de una corrida de análisis.
type AssistantOptions struct {
	TrendsEnabled bool
	Horizon       int // días; <=0 usa DefaultAssistantHorizon
}

// RunAnalysis devuelve un resultado por cada producto con historial
// suficiente (≥5 fechas de venta distintas). Los demás se omiten sin error.
// La fusión con la señal de tendencias es un uplift porcentual:
//
//	ajustado = pronóstico_medio × (1 + score/100)
//
// con score ≥ 0, así el multiplicador nunca reduce un pronóstico.
func (uc *AssistantUseCase) RunAnalysis(ctx context.Context, opts AssistantOptions) ([]dto.ForecastResultDTO, error) {
	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = DefaultAssistantHorizon
	}

	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return nil, err
	}

	useTrends := opts.TrendsEnabled && uc.trends != nil && uc.trends.Enabled()

	results := make([]dto.ForecastResultDTO, 0, len(snap.order))
	for _, pid := range snap.order {
		product := snap.products[pid]

		points := forecast.DailySeries(snap.salesByProduct[pid])
		model, err := forecast.FitSeasonal(points)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientData) {
				uc.log.Debug().Int64("product_id", pid).Msg("producto sin historial suficiente, se omite del pronóstico")
				continue
			}
			return nil, err
		}

		var score float64
		if useTrends {
			score = uc.trends.GetTrendScore(ctx, product.SearchKeyword())
		}
		multiplier := 1 + score/100 // score ≥ 0 ⇒ multiplicador ≥ 1

		adjusted := model.ForecastMean(horizon) * multiplier
		stock := snap.currentStock(pid)

		var daysLeft *float64
		if adjusted > 0 {
			d := round1(stock / adjusted)
			daysLeft = &d
		} // adjusted == 0 ⇒ sin agotamiento previsible (nil = +Inf del contrato)

		results = append(results, dto.ForecastResultDTO{
			ProductID:       pid,
			ProductName:     product.Name,
			Stock:           stock,
			ForecastAvg:     round2(adjusted),
			TrendScore:      score,
			DaysToDepletion: daysLeft,
			IsSlow:          forecast.IsSlowMoving(adjusted),
		})
	}

	uc.log.Info().
		Int("products", len(snap.order)).
		Int("forecasted", len(results)).
		Bool("trends", useTrends).
		Msg("análisis de demanda completado")

	return results, nil
}

// RefreshTrendScores precalienta el caché de tendencias para todo el
// catálogo usando la vía bulk del cliente, que respeta la pausa anti
// rate-limit entre llamadas remotas.
func (uc *AssistantUseCase) RefreshTrendScores(ctx context.Context) error {
	if uc.trends == nil || !uc.trends.Enabled() {
		uc.log.Warn().Msg("tendencias deshabilitadas, no hay nada que refrescar")
		return nil
	}

	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return err
	}

	keywords := make([]string, 0, len(snap.order))
	for _, pid := range snap.order {
		keywords = append(keywords, snap.products[pid].SearchKeyword())
	}

	scores := uc.trends.GetTrendScoresBulk(ctx, keywords)
	for keyword, score := range scores {
		uc.log.Debug().Str("keyword", keyword).Float64("score", score).Msg("score de tendencia actualizado")
	}
	return nil
}
