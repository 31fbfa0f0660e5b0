package forecast

import (
	"sort"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
)

// Constantes de política del motor. Son umbrales fijos del negocio, no
// parámetros derivados de los datos.
const (
	// SlowMovingThreshold unidades/día por debajo de las cuales un producto
	// se considera de baja rotación. El límite es exclusivo: exactamente 0.3
	// NO es lento.
	SlowMovingThreshold = 0.3

	// MinForecastDates fechas de venta distintas requeridas para entrar al
	// pronóstico estadístico.
	MinForecastDates = 5

	// RecentWindowDays ventana móvil para el promedio "reciente".
	RecentWindowDays = 30

	// Bandas de utilización de capacidad: >= 90% lleno, < 30% subutilizado,
	// [30, 90) sin aviso.
	CapacityFullPct = 90.0
	CapacityLowPct  = 30.0
)

// Point es un punto de la serie diaria: total vendido en un día calendario.
type Point struct {
	Day time.Time
	Qty float64
}

// DailySeries agrupa ventas por día calendario, suma cantidades y devuelve la
// serie ordenada ascendente. Las filas con fecha faltante (cero) se excluyen.
func DailySeries(sales []entity.SalesRecord) []Point {
	byDay := make(map[time.Time]float64)
	for _, s := range sales {
		if s.Date.IsZero() {
			continue
		}
		byDay[dayOf(s.Date)] += s.Quantity
	}

	points := make([]Point, 0, len(byDay))
	for d, q := range byDay {
		points = append(points, Point{Day: d, Qty: q})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	return points
}

// TotalQuantity suma las cantidades de la serie.
func TotalQuantity(points []Point) float64 {
	var total float64
	for _, p := range points {
		total += p.Qty
	}
	return total
}

// SpanDays devuelve los días entre first y today, con piso en 1 para evitar
// división por cero cuando el historial es más corto que la ventana.
func SpanDays(first, today time.Time) int {
	span := int(dayOf(today).Sub(dayOf(first)).Hours() / 24)
	if span < 1 {
		return 1
	}
	return span
}

// RecentAverage promedio diario sobre la ventana móvil de 30 días. El divisor
// es min(30, días desde la primera venta), con piso 1.
func RecentAverage(points []Point, today time.Time) float64 {
	if len(points) == 0 {
		return 0
	}
	cutoff := dayOf(today).AddDate(0, 0, -RecentWindowDays)
	var total float64
	for _, p := range points {
		if !p.Day.Before(cutoff) {
			total += p.Qty
		}
	}
	span := SpanDays(points[0].Day, today)
	if span > RecentWindowDays {
		span = RecentWindowDays
	}
	return total / float64(span)
}

// IsSlowMoving clasifica baja rotación. Límite exclusivo en 0.3.
func IsSlowMoving(dailyAvg float64) bool {
	return dailyAvg < SlowMovingThreshold
}

// Values devuelve solo las cantidades de la serie, en orden.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Qty
	}
	return out
}

// dayOf trunca un instante a su día calendario en UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
