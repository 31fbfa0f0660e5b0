package forecast

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tu-usuario/stock-advisor/internal/domain"
)

// ARIMAOrder orden (p,d,q) del modelo autorregresivo integrado.
type ARIMAOrder struct {
	P, D, Q int
}

// OrderFor elige el orden según el largo de la serie: (1,1,1) con más de 5
// observaciones, si no el orden degenerado (0,1,0).
func OrderFor(n int) ARIMAOrder {
	if n > 5 {
		return ARIMAOrder{P: 1, D: 1, Q: 1}
	}
	return ARIMAOrder{P: 0, D: 1, Q: 0}
}

// ARIMAModel es el segundo modelo del estimador, ajustado sobre la misma serie
// que SeasonalModel de forma independiente. Para (1,1,1) los coeficientes se
// estiman con el procedimiento de Hannan-Rissanen: un AR largo por mínimos
// cuadrados aproxima las innovaciones, y una segunda regresión sobre el valor
// y la innovación rezagados entrega phi y theta. (0,1,0) es un paseo
// aleatorio sin deriva: pronostica plano en el último valor observado.
type ARIMAModel struct {
	order ARIMAOrder
	c     float64 // constante de la serie diferenciada
	phi   float64 // coeficiente AR(1)
	theta float64 // coeficiente MA(1)

	values []float64 // serie en niveles
	diff   []float64 // serie diferenciada (d=1)
	innov  []float64 // innovaciones in-sample sobre la diferencia
	fitted []float64 // predicciones one-step en niveles
}

// FitARIMA ajusta el modelo eligiendo el orden con OrderFor. Requiere al menos
// dos observaciones para poder diferenciar.
func FitARIMA(values []float64) (*ARIMAModel, error) {
	n := len(values)
	if n < 2 {
		return nil, domain.ErrInsufficientData
	}

	a := &ARIMAModel{
		order:  OrderFor(n),
		values: values,
		diff:   make([]float64, n-1),
	}
	for i := 1; i < n; i++ {
		a.diff[i-1] = values[i] - values[i-1]
	}

	if a.order.P == 1 {
		a.estimateARMA11()
	}
	a.computeInSample()
	return a, nil
}

// estimateARMA11 corre Hannan-Rissanen sobre la serie diferenciada. Si no hay
// filas suficientes para las regresiones cae al modelo de media constante
// (phi = theta = 0, c = media de la diferencia).
func (a *ARIMAModel) estimateARMA11() {
	w := a.diff
	m := len(w)
	a.c = stat.Mean(w, nil)

	r := 4 // orden del AR largo de la primera etapa
	if r > m/2 {
		r = m / 2
	}
	if r < 1 || m-r < 3 {
		return
	}

	// Etapa 1: AR(r) por OLS para aproximar las innovaciones.
	rows := m - r
	X := mat.NewDense(rows, r+1, nil)
	y := mat.NewVecDense(rows, nil)
	for t := r; t < m; t++ {
		X.Set(t-r, 0, 1)
		for k := 1; k <= r; k++ {
			X.Set(t-r, k, w[t-k])
		}
		y.SetVec(t-r, w[t])
	}
	arCoef, ok := solveOLS(X, y)
	if !ok {
		return
	}

	e := make([]float64, m) // e[t] = 0 para t < r (sin aproximación disponible)
	for t := r; t < m; t++ {
		pred := arCoef[0]
		for k := 1; k <= r; k++ {
			pred += arCoef[k] * w[t-k]
		}
		e[t] = w[t] - pred
	}

	// Etapa 2: w[t] ~ c + phi·w[t-1] + theta·e[t-1].
	start := r + 1
	rows = m - start
	if rows < 3 {
		return
	}
	X2 := mat.NewDense(rows, 3, nil)
	y2 := mat.NewVecDense(rows, nil)
	for t := start; t < m; t++ {
		X2.Set(t-start, 0, 1)
		X2.Set(t-start, 1, w[t-1])
		X2.Set(t-start, 2, e[t-1])
		y2.SetVec(t-start, w[t])
	}
	coef, ok := solveOLS(X2, y2)
	if !ok {
		return
	}

	a.c = coef[0]
	a.phi = clampCoef(coef[1])
	a.theta = clampCoef(coef[2])
}

// computeInSample corre la recursión de innovaciones y arma las predicciones
// one-step en niveles para las métricas de transparencia.
func (a *ARIMAModel) computeInSample() {
	w := a.diff
	m := len(w)
	a.innov = make([]float64, m)
	wHat := make([]float64, m)

	for j := 0; j < m; j++ {
		if a.order.P == 1 {
			if j == 0 {
				wHat[j] = a.c
			} else {
				wHat[j] = a.c + a.phi*w[j-1] + a.theta*a.innov[j-1]
			}
		}
		a.innov[j] = w[j] - wHat[j]
	}

	a.fitted = make([]float64, len(a.values))
	a.fitted[0] = a.values[0]
	for j := 0; j < m; j++ {
		a.fitted[j+1] = a.values[j] + wHat[j]
	}
}

// Forecast proyecta steps valores hacia adelante en niveles, truncados en
// cero. La recursión interna no se trunca; solo la salida.
func (a *ARIMAModel) Forecast(steps int) []float64 {
	out := make([]float64, 0, steps)
	level := a.values[len(a.values)-1]
	wPrev := a.diff[len(a.diff)-1]
	ePrev := a.innov[len(a.innov)-1]

	for k := 0; k < steps; k++ {
		var wHat float64
		if a.order.P == 1 {
			wHat = a.c + a.phi*wPrev + a.theta*ePrev
		}
		level += wHat
		out = append(out, clampZero(level))
		wPrev = wHat
		ePrev = 0 // innovaciones futuras esperadas en cero
	}
	return out
}

// Metrics devuelve MAE y RMSE del ajuste one-step in-sample.
func (a *ARIMAModel) Metrics() (mae, rmse float64) {
	return MAE(a.values, a.fitted), RMSE(a.values, a.fitted)
}

// Order devuelve el orden efectivamente ajustado.
func (a *ARIMAModel) Order() ARIMAOrder {
	return a.order
}

// solveOLS resuelve min ||Xb - y|| por QR. ok=false si la factorización no
// puede resolver (matriz degenerada).
func solveOLS(X *mat.Dense, y *mat.VecDense) ([]float64, bool) {
	var qr mat.QR
	qr.Factorize(X)

	_, cols := X.Dims()
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, y); err != nil {
		return nil, false
	}

	coef := make([]float64, cols)
	for i := 0; i < cols; i++ {
		coef[i] = sol.At(i, 0)
	}
	return coef, true
}

// clampCoef mantiene los coeficientes dentro de la región estacionaria.
func clampCoef(v float64) float64 {
	const limit = 0.98
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
