package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/internal/domain/forecast"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestDailySeries_AgrupaYOrdena verifica que las ventas del mismo día se suman
// y la serie sale ordenada aunque las filas lleguen desordenadas.
func TestDailySeries_AgrupaYOrdena(t *testing.T) {
	sales := []entity.SalesRecord{
		{ProductID: 1, Date: day("2025-03-03"), Quantity: 4},
		{ProductID: 1, Date: day("2025-03-01"), Quantity: 2},
		{ProductID: 1, Date: day("2025-03-03"), Quantity: 1},
		{ProductID: 1, Date: day("2025-03-02"), Quantity: 3},
	}

	points := forecast.DailySeries(sales)
	require.Len(t, points, 3)
	assert.Equal(t, day("2025-03-01"), points[0].Day)
	assert.Equal(t, 3.0, points[1].Qty)
	assert.Equal(t, 5.0, points[2].Qty, "las dos ventas del día 3 deben sumarse")
}

// TestDailySeries_FechaFaltanteSeExcluye una fila con fecha ilegible (cero)
// no entra a la agregación; no es un error.
func TestDailySeries_FechaFaltanteSeExcluye(t *testing.T) {
	sales := []entity.SalesRecord{
		{ProductID: 1, Date: time.Time{}, Quantity: 99},
		{ProductID: 1, Date: day("2025-03-01"), Quantity: 2},
	}

	points := forecast.DailySeries(sales)
	require.Len(t, points, 1)
	assert.Equal(t, 2.0, points[0].Qty)
}

// TestSpanDays_PisoEnUno el divisor nunca baja de 1, incluso cuando el
// historial arranca hoy.
func TestSpanDays_PisoEnUno(t *testing.T) {
	today := day("2025-03-01")
	assert.Equal(t, 1, forecast.SpanDays(today, today))
	assert.Equal(t, 1, forecast.SpanDays(today.AddDate(0, 0, 1), today))
	assert.Equal(t, 7, forecast.SpanDays(today.AddDate(0, 0, -7), today))
}

// TestIsSlowMoving_LimiteExclusivo el umbral 0.3 es exclusivo: exactamente
// 0.3 unidades/día NO es baja rotación.
func TestIsSlowMoving_LimiteExclusivo(t *testing.T) {
	assert.True(t, forecast.IsSlowMoving(0.0))
	assert.True(t, forecast.IsSlowMoving(0.29))
	assert.False(t, forecast.IsSlowMoving(0.3), "el límite en 0.3 exacto queda fuera")
	assert.False(t, forecast.IsSlowMoving(0.31))
	assert.False(t, forecast.IsSlowMoving(2.5))
}

// TestRecentAverage_VentanaDe30Dias ventas de 2 unidades en 5 días corridos,
// con el análisis corriendo al día siguiente: promedio reciente 10/5 = 2.0.
func TestRecentAverage_VentanaDe30Dias(t *testing.T) {
	var sales []entity.SalesRecord
	for i := 0; i < 5; i++ {
		sales = append(sales, entity.SalesRecord{
			ProductID: 1,
			Date:      day("2025-03-01").AddDate(0, 0, i),
			Quantity:  2,
		})
	}
	points := forecast.DailySeries(sales)
	today := day("2025-03-06")

	assert.InDelta(t, 2.0, forecast.RecentAverage(points, today), 1e-9)
	assert.InDelta(t, 10.0, forecast.TotalQuantity(points), 1e-9)
}

// TestRecentAverage_IgnoraVentasViejas las ventas fuera de la ventana de 30
// días no cuentan en el promedio reciente.
func TestRecentAverage_IgnoraVentasViejas(t *testing.T) {
	today := day("2025-03-31")
	sales := []entity.SalesRecord{
		{ProductID: 1, Date: day("2024-12-01"), Quantity: 300}, // vieja
		{ProductID: 1, Date: day("2025-03-30"), Quantity: 30},
	}
	points := forecast.DailySeries(sales)

	// Solo las 30 unidades del 30/03 entran, divididas por los 30 días de la
	// ventana (el historial es más largo que la ventana).
	assert.InDelta(t, 1.0, forecast.RecentAverage(points, today), 1e-9)
}

// TestRecentAverage_SerieVacia sin ventas el promedio es cero, sin división
// por cero.
func TestRecentAverage_SerieVacia(t *testing.T) {
	assert.Zero(t, forecast.RecentAverage(nil, day("2025-03-01")))
}
