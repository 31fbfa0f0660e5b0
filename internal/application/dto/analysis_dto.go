package dto

import "github.com/shopspring/decimal"

// Códigos de sugerencia del motor de avisos. Son parte del contrato con la
// capa de presentación; ella decide cómo traducirlos al usuario.
const (
	SuggestionSlowSelling        = "slow_selling_general"
	SuggestionExpiringAndSlow    = "expiring_and_slow"
	SuggestionExpiringDiscount   = "expiring_discount"
	SuggestionUnsoldWithStock    = "unsold_with_stock"
	SuggestionFrontShelfCritical = "front_shelf_critical"
	SuggestionFrontShelf         = "front_shelf"
	SuggestionLowDemandShelf     = "low_demand_shelf"
	SuggestionCapacityFull       = "capacity_full"
	SuggestionCapacityLow        = "capacity_low"
)

// Sentinelas de los campos de texto del contrato.
const (
	NoExpirySentinel       = "no-expiry"
	UnknownStorageSentinel = "unknown"
)

// ── Pronóstico por producto (análisis masivo) ─────────────────────────────────

// ForecastResultDTO resultado del análisis de demanda para un producto.
// DaysToDepletion en nil significa "sin agotamiento previsible" (demanda
// ajustada cero); el JSON estándar no representa +Inf.
type ForecastResultDTO struct {
	ProductID       int64    `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Stock           float64  `json:"stock"`
	ForecastAvg     float64  `json:"forecast_avg"` // demanda diaria ya ajustada por tendencia
	TrendScore      float64  `json:"trend_score"`  // 0 cuando las tendencias están apagadas
	DaysToDepletion *float64 `json:"days_to_depletion"`
	IsSlow          bool     `json:"is_slow"`
}

// ── Avisos operativos ─────────────────────────────────────────────────────────

// SuggestionDTO una sugerencia con su métrica de soporte cuando aplica.
type SuggestionDTO struct {
	Code        string   `json:"code"`
	CapacityPct *float64 `json:"capacity_pct,omitempty"` // solo capacity_full / capacity_low
}

// AdvisoryDTO avisos de un producto. Un producto sin sugerencias no aparece
// en la lista: ausencia significa "sin acción pendiente", no error.
type AdvisoryDTO struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	DailyAvg       float64         `json:"daily_avg"`
	Stock          float64         `json:"stock"`
	StorageType    string          `json:"storage_type"` // shelf | fridge | "unknown"
	StorageID      *int64          `json:"storage_id"`
	EarliestExpiry string          `json:"earliest_expiry"` // YYYY-MM-DD o "no-expiry"
	Suggestions    []SuggestionDTO `json:"suggestions"`
}

// ── Reposición ────────────────────────────────────────────────────────────────

// ReorderDTO sugerencia de pedido para un producto con días de stock por
// debajo del umbral. UsedCapacity es un porcentaje formateado ("83.4%") o
// "unknown" si el producto no tiene vínculo de almacenamiento con capacidad.
// La fórmula stock × volumen unitario no descuenta stock reservado o en
// tránsito; es una simplificación conocida del sistema.
type ReorderDTO struct {
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	DailyAvg       float64 `json:"daily_avg"`
	StockLeft      int     `json:"stock_left"`
	DaysLeft       float64 `json:"days_left"`
	StorageType    string  `json:"storage_type"`
	StorageID      *int64  `json:"storage_id"`
	UsedCapacity   string  `json:"used_capacity"`
	SuggestedOrder int     `json:"suggested_order"` // max(⌊avg·minDays⌋ − ⌊stock⌋, 0)
}

// ── Comparación de modelos por producto ───────────────────────────────────────

// SeriesPointDTO un punto fecha/valor.
type SeriesPointDTO struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// ForecastPointDTO un punto pronosticado con bandas de confianza truncadas en cero.
type ForecastPointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ModelMetricsDTO métricas in-sample de un modelo. Siempre se reportan los
// dos modelos lado a lado; el motor no elige un ganador.
type ModelMetricsDTO struct {
	Model string  `json:"model"` // "seasonal" | "arima(p,d,q)"
	MAE   float64 `json:"mae"`
	RMSE  float64 `json:"rmse"`
}

// ProductForecastDTO historia y pronóstico de los dos modelos para un producto.
type ProductForecastDTO struct {
	ProductID   int64              `json:"product_id"`
	ProductName string             `json:"product_name"`
	History     []SeriesPointDTO   `json:"history"`
	Seasonal    []ForecastPointDTO `json:"seasonal_forecast"`
	ARIMA       []SeriesPointDTO   `json:"arima_forecast"`
	Metrics     []ModelMetricsDTO  `json:"metrics"`
}

// ── Plan de demanda a 30 días ─────────────────────────────────────────────────

// PlanItemDTO proyección de un producto dentro del plan agregado.
// El pronóstico agregado se reparte por peso histórico de ventas.
type PlanItemDTO struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ForecastedQty    float64         `json:"forecasted_qty"`
	CurrentStock     float64         `json:"current_stock"`
	Shortage         float64         `json:"shortage"`          // max(forecast − stock, 0)
	EffectivePrice   decimal.Decimal `json:"effective_price"`   // precio de campaña si está vigente
	PotentialRevenue decimal.Decimal `json:"potential_revenue"`
	PotentialCost    decimal.Decimal `json:"potential_cost"`
	PotentialProfit  decimal.Decimal `json:"potential_profit"`
	ProjectedVolume  float64         `json:"projected_volume"`
	StorageCapacity  *float64        `json:"storage_capacity"`  // nil sin vínculo/capacidad
	VolumeOverload   bool            `json:"volume_overload"`
}

// PlanSummaryDTO plan de demanda del horizonte completo con totales.
type PlanSummaryDTO struct {
	HorizonDays      int             `json:"horizon_days"`
	TotalForecastQty float64         `json:"total_forecast_qty"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalShortage    float64         `json:"total_shortage"`
	CriticalCount    int             `json:"critical_count"` // productos con faltante
	OverloadCount    int             `json:"overload_count"` // productos con capacidad excedida
	Items            []PlanItemDTO   `json:"items"`
}
