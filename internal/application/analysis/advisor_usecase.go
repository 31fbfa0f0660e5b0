package analysis

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// Umbrales de las reglas de vencimiento, en días.
const (
	expiryWarnDays  = 10 // aviso de descuento / lote lento por vencer
	expiryShelfDays = 7  // reubicación a estante frontal
	recentLowAvg    = 1.0
)

// AdvisorUseCase evalúa las reglas operativas por producto y emite cero o más
// sugerencias. Las reglas son independientes y disparan todas las que
// apliquen, salvo la tríada de ubicación en estante, que es excluyente.
// Un producto sin sugerencias se omite de la salida.
type AdvisorUseCase struct {
	history repository.HistoryRepository
	log     *logger.Logger

	Now func() time.Time
}

// NewAdvisorUseCase construye el motor de avisos.
func NewAdvisorUseCase(history repository.HistoryRepository, log *logger.Logger) *AdvisorUseCase {
	return &AdvisorUseCase{history: history, log: log, Now: time.Now}
}

// Analyze corre las reglas sobre el catálogo completo.
//
// Promedios: el de largo plazo divide lo vendido del producto por los días
// desde la venta más antigua de toda la tabla; el reciente usa la ventana
// móvil de 30 días. Ambos con piso de 1 día.
func (uc *AdvisorUseCase) Analyze(ctx context.Context) ([]dto.AdvisoryDTO, error) {
	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return nil, err
	}

	span := snap.globalSpanDays()
	var results []dto.AdvisoryDTO

	for _, pid := range snap.order {
		product := snap.products[pid]
		points := forecast.DailySeries(snap.salesByProduct[pid])

		dailyAvg := forecast.TotalQuantity(points) / float64(span)
		recentAvg := forecast.RecentAverage(points, snap.today)
		stock := snap.currentStock(pid)
		expiry, hasExpiry := snap.earliestExpiry[pid]

		var suggestions []dto.SuggestionDTO
		add := func(code string) {
			suggestions = append(suggestions, dto.SuggestionDTO{Code: code})
		}

		if forecast.IsSlowMoving(dailyAvg) {
			add(dto.SuggestionSlowSelling)
		}

		if hasExpiry && daysUntil(snap.today, expiry) <= expiryWarnDays {
			if forecast.IsSlowMoving(dailyAvg) {
				add(dto.SuggestionExpiringAndSlow)
			} else {
				add(dto.SuggestionExpiringDiscount)
			}
		}

		if dailyAvg == 0 && stock > 0 {
			add(dto.SuggestionUnsoldWithStock)
		}

		// Tríada de ubicación: excluyente y condicionada a que exista algún
		// lote con vencimiento registrado.
		if hasExpiry {
			switch d := daysUntil(snap.today, expiry); {
			case d <= expiryShelfDays && recentAvg < recentLowAvg:
				add(dto.SuggestionFrontShelfCritical)
			case d <= expiryShelfDays:
				add(dto.SuggestionFrontShelf)
			case recentAvg < recentLowAvg:
				add(dto.SuggestionLowDemandShelf)
			}
		}

		if unit, _, ok := snap.storageFor(pid); ok && unit.MaxCapacity > 0 {
			pct := stock * product.VolumeOrDefault() / unit.MaxCapacity * 100
			rounded := round1(pct)
			switch {
			case pct >= forecast.CapacityFullPct:
				suggestions = append(suggestions, dto.SuggestionDTO{Code: dto.SuggestionCapacityFull, CapacityPct: &rounded})
			case pct < forecast.CapacityLowPct:
				suggestions = append(suggestions, dto.SuggestionDTO{Code: dto.SuggestionCapacityLow, CapacityPct: &rounded})
			}
		}

		if len(suggestions) == 0 {
			continue // sin acción pendiente
		}

		advisory := dto.AdvisoryDTO{
			ProductID:      pid,
			ProductName:    product.Name,
			DailyAvg:       round2(dailyAvg),
			Stock:          stock,
			StorageType:    dto.UnknownStorageSentinel,
			EarliestExpiry: dto.NoExpirySentinel,
			Suggestions:    suggestions,
		}
		if link, ok := snap.links[pid]; ok {
			advisory.StorageType = link.StorageType
			sid := link.StorageID
			advisory.StorageID = &sid
		}
		if hasExpiry {
			advisory.EarliestExpiry = expiry.Format("2006-01-02")
		}

		results = append(results, advisory)
	}

	uc.log.Info().Int("products", len(snap.order)).Int("with_suggestions", len(results)).Msg("avisos operativos generados")
	return results, nil
}
