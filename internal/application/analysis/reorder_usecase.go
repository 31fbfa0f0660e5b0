package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// DefaultMinDays umbral por defecto de días de stock para sugerir reposición.
const DefaultMinDays = 5

// ReorderUseCase calcula la lista de reposición: productos cuyo stock cubre
// minDays o menos de demanda al ritmo de venta histórico.
type ReorderUseCase struct {
	history repository.HistoryRepository
	log     *logger.Logger

	Now func() time.Time
}

// NewReorderUseCase construye el caso de uso de reposición.
func NewReorderUseCase(history repository.HistoryRepository, log *logger.Logger) *ReorderUseCase {
	return &ReorderUseCase{history: history, log: log, Now: time.Now}
}

// ComputeAdvice devuelve una sugerencia por producto con days_left ≤ minDays.
// minDays ≤ 0 usa DefaultMinDays. Cantidad sugerida:
//
//	max(⌊daily_avg × minDays⌋ − ⌊stock⌋, 0)
//
// nunca negativa. Productos sin ventas tienen days_left infinito y no entran.
func (uc *ReorderUseCase) ComputeAdvice(ctx context.Context, minDays int) ([]dto.ReorderDTO, error) {
	if minDays <= 0 {
		minDays = DefaultMinDays
	}

	snap, err := loadSnapshot(ctx, uc.history, uc.Now())
	if err != nil {
		return nil, err
	}

	span := snap.globalSpanDays()
	var suggestions []dto.ReorderDTO

	for _, pid := range snap.order {
		product := snap.products[pid]
		points := forecast.DailySeries(snap.salesByProduct[pid])

		dailyAvg := forecast.TotalQuantity(points) / float64(span)
		stock := snap.currentStock(pid)

		daysLeft := math.Inf(1)
		if dailyAvg > 0 {
			daysLeft = stock / dailyAvg
		}
		if daysLeft > float64(minDays) {
			continue
		}

		usedCapacity := dto.UnknownStorageSentinel
		storageType := dto.UnknownStorageSentinel
		var storageID *int64
		if link, ok := snap.links[pid]; ok {
			storageType = link.StorageType
			sid := link.StorageID
			storageID = &sid
		}
		if unit, _, ok := snap.storageFor(pid); ok && unit.MaxCapacity > 0 {
			pct := stock * product.VolumeOrDefault() / unit.MaxCapacity * 100
			usedCapacity = fmt.Sprintf("%.1f%%", pct)
		}

		suggested := int(dailyAvg*float64(minDays)) - int(stock)
		if suggested < 0 {
			suggested = 0
		}

		suggestions = append(suggestions, dto.ReorderDTO{
			ProductID:      pid,
			ProductName:    product.Name,
			DailyAvg:       round2(dailyAvg),
			StockLeft:      int(stock),
			DaysLeft:       round1(daysLeft),
			StorageType:    storageType,
			StorageID:      storageID,
			UsedCapacity:   usedCapacity,
			SuggestedOrder: suggested,
		})
	}

	uc.log.Info().Int("suggestions", len(suggestions)).Int("min_days", minDays).Msg("lista de reposición calculada")
	return suggestions, nil
}
