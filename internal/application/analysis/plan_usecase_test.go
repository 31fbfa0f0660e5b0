package analysis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-advisor/internal/application/analysis"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

func newPlan(h *stubHistory) *analysis.PlanUseCase {
	uc := analysis.NewPlanUseCase(h, logger.Nop())
	uc.Now = func() time.Time { return analysisToday }
	return uc
}

// TestBuildPlan_RepartoPorPeso dos productos con venta agregada constante de
// 10/día: el pronóstico a 30 días (300) se reparte 80/20 según lo vendido.
func TestBuildPlan_RepartoPorPeso(t *testing.T) {
	sales := dailySales(1, day("2024-03-09"), 6, 8)
	sales = append(sales, dailySales(2, day("2024-03-09"), 6, 2)...)
	h := &stubHistory{
		products: []entity.Product{
			{ID: 1, Name: "Gaseosa Cola", SellingPrice: dec("5"), CostPrice: dec("3"), UnitVolume: 1},
			{
				ID: 2, Name: "Agua Mineral",
				SellingPrice: dec("3"), CostPrice: dec("1"),
				DiscountPrice: dec("2"), DiscountUntil: day("2024-06-30"), HasDiscount: true,
			},
		},
		sales: sales,
		stock: []entity.StockTransaction{
			{ProductID: 1, Date: day("2024-03-01"), Quantity: 100}, // stock 52
			{ProductID: 2, Date: day("2024-03-01"), Quantity: 100}, // stock 88
		},
		units: []entity.StorageUnit{{ID: 1, Type: entity.StorageTypeShelf, MaxCapacity: 100}},
		links: []entity.ProductStorageLink{{ProductID: 1, StorageType: entity.StorageTypeShelf, StorageID: 1}},
	}

	plan, err := newPlan(h).BuildPlan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, plan.HorizonDays)
	assert.InDelta(t, 300, plan.TotalForecastQty, 0.01)
	require.Len(t, plan.Items, 2)

	cola := plan.Items[0]
	assert.InDelta(t, 240, cola.ForecastedQty, 0.01) // peso 48/60
	assert.Equal(t, 52.0, cola.CurrentStock)
	assert.InDelta(t, 188, cola.Shortage, 0.01)
	assert.True(t, cola.PotentialRevenue.Equal(dec("1200"))) // 240 × 5
	assert.True(t, cola.PotentialCost.Equal(dec("720")))
	assert.True(t, cola.PotentialProfit.Equal(dec("480")))
	require.NotNil(t, cola.StorageCapacity)
	assert.Equal(t, 100.0, *cola.StorageCapacity)
	assert.True(t, cola.VolumeOverload) // 240 de volumen contra 100 de capacidad

	agua := plan.Items[1]
	assert.InDelta(t, 60, agua.ForecastedQty, 0.01) // peso 12/60
	assert.InDelta(t, 0, agua.Shortage, 0.01)       // stock 88 cubre 60
	assert.True(t, agua.EffectivePrice.Equal(dec("2"))) // campaña vigente
	assert.True(t, agua.PotentialRevenue.Equal(dec("120")))
	assert.Nil(t, agua.StorageCapacity)
	assert.False(t, agua.VolumeOverload)

	assert.True(t, plan.TotalRevenue.Equal(dec("1320")))
	assert.True(t, plan.TotalProfit.Equal(dec("540"))) // 480 + (120 − 60)
	assert.InDelta(t, 188, plan.TotalShortage, 0.01)
	assert.Equal(t, 1, plan.CriticalCount)
	assert.Equal(t, 1, plan.OverloadCount)
}

// TestBuildPlan_HistorialInsuficiente con menos de 5 fechas agregadas el plan
// sale vacío sin error: no hay nada que planificar todavía.
func TestBuildPlan_HistorialInsuficiente(t *testing.T) {
	h := &stubHistory{
		products: []entity.Product{{ID: 1, Name: "Gaseosa Cola", SellingPrice: dec("5")}},
		sales:    dailySales(1, day("2024-03-09"), 3, 8),
	}

	plan, err := newPlan(h).BuildPlan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, plan.HorizonDays)
	assert.Zero(t, plan.TotalForecastQty)
	assert.Empty(t, plan.Items)
	assert.True(t, plan.TotalRevenue.IsZero())
}

// TestBuildPlan_AlmacenCaido el error del puerto sí es fatal.
func TestBuildPlan_AlmacenCaido(t *testing.T) {
	_, err := newPlan(&stubHistory{err: domain.ErrStoreUnavailable}).BuildPlan(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
