package analysis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-advisor/internal/application/analysis"
	"github.com/tu-usuario/stock-advisor/internal/application/dto"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

func newReorder(h *stubHistory) *analysis.ReorderUseCase {
	uc := analysis.NewReorderUseCase(h, logger.Nop())
	uc.Now = func() time.Time { return analysisToday }
	return uc
}

// TestComputeAdvice_CantidadSugerida el caso de referencia: 2 unidades/día,
// 4 en stock, umbral 5 días → pedir 6.
func TestComputeAdvice_CantidadSugerida(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Café Molido", UnitVolume: 1}},
		sales:    dailySales(1, day("2024-03-09"), 5, 2), // 10 unidades, span global 5 días
		stock:    []entity.StockTransaction{{ProductID: 1, Date: day("2024-03-01"), Quantity: 14}},
		units:    []entity.StorageUnit{{ID: 1, Type: entity.StorageTypeShelf, MaxCapacity: 10}},
		links:    []entity.ProductStorageLink{{ProductID: 1, StorageType: entity.StorageTypeShelf, StorageID: 1}},
	}

	results, err := newReorder(h).ComputeAdvice(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 2.0, r.DailyAvg)
	assert.Equal(t, 4, r.StockLeft)
	assert.Equal(t, 2.0, r.DaysLeft)
	assert.Equal(t, 6, r.SuggestedOrder) // 2×5 − 4
	assert.Equal(t, "40.0%", r.UsedCapacity)
	assert.Equal(t, entity.StorageTypeShelf, r.StorageType)
}

// TestComputeAdvice_StockSuficiente productos con más días de cobertura que
// el umbral no entran en la lista.
func TestComputeAdvice_StockSuficiente(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Café Molido"}},
		sales:    dailySales(1, day("2024-03-09"), 5, 2),
		stock:    []entity.StockTransaction{{ProductID: 1, Date: day("2024-03-01"), Quantity: 30}}, // 20 en stock → 10 días
	}

	results, err := newReorder(h).ComputeAdvice(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestComputeAdvice_SinVentas sin ventas la cobertura es infinita y el
// producto nunca aparece, aunque tenga stock cero.
func TestComputeAdvice_SinVentas(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Incienso"}},
	}

	results, err := newReorder(h).ComputeAdvice(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestComputeAdvice_UmbralPorDefecto minDays fuera de rango cae al valor por
// defecto de 5 días.
func TestComputeAdvice_UmbralPorDefecto(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Café Molido"}},
		sales:    dailySales(1, day("2024-03-09"), 5, 2),
		stock:    []entity.StockTransaction{{ProductID: 1, Date: day("2024-03-01"), Quantity: 14}},
	}

	results, err := newReorder(h).ComputeAdvice(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 6, results[0].SuggestedOrder)
	assert.Equal(t, dto.UnknownStorageSentinel, results[0].UsedCapacity)
	assert.Equal(t, dto.UnknownStorageSentinel, results[0].StorageType)
}

// TestComputeAdvice_NuncaNegativa con stock por encima de lo que cubre el
// umbral pero días justos, la cantidad sugerida se trunca en cero.
func TestComputeAdvice_NuncaNegativa(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Té Verde"}},
		// 10 unidades sobre span 5 → 2/día; stock 10 → 5 días justos.
		sales: dailySales(1, day("2024-03-09"), 5, 2),
		stock: []entity.StockTransaction{{ProductID: 1, Date: day("2024-03-01"), Quantity: 20}},
	}

	results, err := newReorder(h).ComputeAdvice(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 5.0, results[0].DaysLeft)
	assert.Equal(t, 0, results[0].SuggestedOrder) // 2×5 − 10
}

// TestComputeAdvice_AlmacenCaido el error del puerto aborta la corrida.
func TestComputeAdvice_AlmacenCaido(t *testing.T) {
	_, err := newReorder(&stubHistory{err: domain.ErrStoreUnavailable}).ComputeAdvice(context.Background(), 5)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
