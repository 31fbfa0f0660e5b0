package ports

import "context"

// TrendService define el puerto de salida para el score de popularidad
// externo (Google Trends vía SerpAPI, mock, etc.). Siguiendo DIP, la capa de
// aplicación solo conoce este contrato, no la implementación concreta.
type TrendService interface {
	// GetTrendScore devuelve el score 0–100 para la frase de búsqueda dada.
	// Nunca falla: credenciales ausentes, errores de red o respuestas vacías
	// degradan a 0.0 (efecto neutro sobre el pronóstico). El contexto debe
	// llevar timeout para que la llamada remota no cuelgue al análisis.
	GetTrendScore(ctx context.Context, keyword string) float64

	// GetTrendScoresBulk resuelve varios keywords en serie. Entre llamadas
	// que sí van a la red el cliente inserta una pausa aleatoria para
	// respetar los límites del proveedor.
	GetTrendScoresBulk(ctx context.Context, keywords []string) map[string]float64

	// Enabled informa si el cliente puede hacer llamadas remotas. En false
	// todos los scores son implícitamente 0.0.
	Enabled() bool
}
