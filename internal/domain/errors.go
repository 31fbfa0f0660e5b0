package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrInsufficientData NO es una falla del análisis: marca productos con menos
// de 5 fechas de venta distintas, que se excluyen del pronóstico estadístico
// pero siguen participando en los promedios simples.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrInsufficientData = errors.New("datos insuficientes para el pronóstico")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)
