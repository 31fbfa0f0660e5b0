package repository

import (
	"context"

	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
)

// HistoryRepository define el puerto de lectura del histórico (DIP).
// Las implementaciones son read-only: el motor de análisis trabaja sobre un
// snapshot tomado al inicio de cada corrida y nunca escribe en el almacén.
// Si el almacén está caído, los métodos devuelven un error que envuelve
// domain.ErrStoreUnavailable — distinto de "no hay datos" (slice vacío).
type HistoryRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListSales(ctx context.Context) ([]entity.SalesRecord, error)
	ListStockTransactions(ctx context.Context) ([]entity.StockTransaction, error)
	ListStorageUnits(ctx context.Context) ([]entity.StorageUnit, error)
	ListStorageLinks(ctx context.Context) ([]entity.ProductStorageLink, error)
}
