package forecast

import "math"

// MAE error absoluto medio entre la serie observada y la ajustada.
// Slices vacíos o de largo distinto -> 0 (no hay nada que medir).
func MAE(observed, fitted []float64) float64 {
	n := len(observed)
	if n == 0 || n != len(fitted) {
		return 0
	}
	var sum float64
	for i := range observed {
		sum += math.Abs(observed[i] - fitted[i])
	}
	return sum / float64(n)
}

// RMSE raíz del error cuadrático medio entre la serie observada y la ajustada.
func RMSE(observed, fitted []float64) float64 {
	n := len(observed)
	if n == 0 || n != len(fitted) {
		return 0
	}
	var sum float64
	for i := range observed {
		d := observed[i] - fitted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}
