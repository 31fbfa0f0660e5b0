package forecast

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tu-usuario/stock-advisor/internal/domain"
)

// z para un intervalo de confianza del 80%, el ancho de las bandas de
// pronóstico que consume la capa de presentación.
const intervalZ = 1.2816

// ForecastPoint es un punto pronosticado con sus bandas de confianza.
// Los tres valores están truncados en cero: demanda negativa no tiene sentido.
type ForecastPoint struct {
	Day   time.Time
	Value float64
	Lower float64
	Upper float64
}

// SeasonalModel es el modelo aditivo de series de tiempo del estimador:
//
//	y(t) = nivel + tendencia·t + estacional[día de semana]
//
// La tendencia se ajusta por mínimos cuadrados sobre el índice de días; el
// componente estacional es el residuo medio de cada día de la semana; las
// bandas salen del desvío estándar de los residuos finales.
type SeasonalModel struct {
	alpha    float64 // intercepto de la tendencia
	beta     float64 // pendiente (unidades/día)
	seasonal [7]float64
	sigma    float64

	origin   time.Time // día 0 de la serie
	last     time.Time // última fecha observada
	observed []float64
	fitted   []float64
}

// FitSeasonal ajusta el modelo sobre la serie diaria. Requiere al menos
// MinForecastDates fechas distintas; con menos devuelve
// domain.ErrInsufficientData (no es una falla, el producto queda fuera del
// camino estadístico).
func FitSeasonal(points []Point) (*SeasonalModel, error) {
	n := len(points)
	if n < MinForecastDates {
		return nil, domain.ErrInsufficientData
	}

	m := &SeasonalModel{
		origin:   points[0].Day,
		last:     points[n-1].Day,
		observed: Values(points),
	}

	// Tendencia lineal sobre el índice de días (los huecos del calendario se
	// respetan: t es días desde el origen, no posición en el slice).
	ts := make([]float64, n)
	for i, p := range points {
		ts[i] = float64(SpanDays(m.origin, p.Day))
	}
	ts[0] = 0
	m.alpha, m.beta = stat.LinearRegression(ts, m.observed, nil, false)

	// Componente estacional: residuo medio por día de la semana.
	var sums, counts [7]float64
	for i, p := range points {
		dow := int(p.Day.Weekday())
		sums[dow] += m.observed[i] - (m.alpha + m.beta*ts[i])
		counts[dow]++
	}
	for d := 0; d < 7; d++ {
		if counts[d] > 0 {
			m.seasonal[d] = sums[d] / counts[d]
		}
	}

	// Ajuste in-sample y desvío de los residuos finales.
	m.fitted = make([]float64, n)
	resid := make([]float64, n)
	for i, p := range points {
		m.fitted[i] = m.alpha + m.beta*ts[i] + m.seasonal[int(p.Day.Weekday())]
		resid[i] = m.observed[i] - m.fitted[i]
	}
	m.sigma = stat.StdDev(resid, nil)

	return m, nil
}

// Forecast proyecta horizon días después de la última observación. Valores y
// bandas truncados en cero.
func (m *SeasonalModel) Forecast(horizon int) []ForecastPoint {
	out := make([]ForecastPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		day := m.last.AddDate(0, 0, k)
		t := float64(SpanDays(m.origin, day))
		raw := m.alpha + m.beta*t + m.seasonal[int(day.Weekday())]
		out = append(out, ForecastPoint{
			Day:   day,
			Value: clampZero(raw),
			Lower: clampZero(raw - intervalZ*m.sigma),
			Upper: clampZero(raw + intervalZ*m.sigma),
		})
	}
	return out
}

// ForecastMean promedio de los valores pronosticados sobre el horizonte.
func (m *SeasonalModel) ForecastMean(horizon int) float64 {
	if horizon <= 0 {
		return 0
	}
	var sum float64
	for _, p := range m.Forecast(horizon) {
		sum += p.Value
	}
	return sum / float64(horizon)
}

// Metrics devuelve MAE y RMSE del ajuste in-sample. Se reportan siempre junto
// con las del modelo ARIMA; el motor no elige un ganador.
func (m *SeasonalModel) Metrics() (mae, rmse float64) {
	return MAE(m.observed, m.fitted), RMSE(m.observed, m.fitted)
}

// LastObserved última fecha de la serie ajustada.
func (m *SeasonalModel) LastObserved() time.Time {
	return m.last
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
