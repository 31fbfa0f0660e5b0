package analysis_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-advisor/internal/application/ports"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
)

// stubHistory implementa el puerto de histórico en memoria para los tests de
// los casos de uso. Con err distinto de nil todos los métodos fallan.
type stubHistory struct {
	products []entity.Product
	sales    []entity.SalesRecord
	stock    []entity.StockTransaction
	units    []entity.StorageUnit
	links    []entity.ProductStorageLink

	err error
}

var _ repository.HistoryRepository = (*stubHistory)(nil)

func (s *stubHistory) ListProducts(context.Context) ([]entity.Product, error) {
	return s.products, s.err
}

func (s *stubHistory) ListSales(context.Context) ([]entity.SalesRecord, error) {
	return s.sales, s.err
}

func (s *stubHistory) ListStockTransactions(context.Context) ([]entity.StockTransaction, error) {
	return s.stock, s.err
}

func (s *stubHistory) ListStorageUnits(context.Context) ([]entity.StorageUnit, error) {
	return s.units, s.err
}

func (s *stubHistory) ListStorageLinks(context.Context) ([]entity.ProductStorageLink, error) {
	return s.links, s.err
}

// stubTrends devuelve siempre el mismo score y cuenta las llamadas.
type stubTrends struct {
	score   float64
	enabled bool

	calls     int
	bulkCalls int
}

var _ ports.TrendService = (*stubTrends)(nil)

func (s *stubTrends) GetTrendScore(context.Context, string) float64 {
	s.calls++
	return s.score
}

func (s *stubTrends) GetTrendScoresBulk(_ context.Context, keywords []string) map[string]float64 {
	s.bulkCalls++
	out := make(map[string]float64, len(keywords))
	for _, k := range keywords {
		out[k] = s.score
	}
	return out
}

func (s *stubTrends) Enabled() bool { return s.enabled }

// day parsea una fecha YYYY-MM-DD en UTC.
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// dec parsea un decimal o entra en pánico (solo para fixtures).
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// dailySales genera una venta por día del producto, count días consecutivos
// terminando en end, con la cantidad dada.
func dailySales(productID int64, end time.Time, count int, qty float64) []entity.SalesRecord {
	out := make([]entity.SalesRecord, 0, count)
	for i := count - 1; i >= 0; i-- {
		out = append(out, entity.SalesRecord{
			ProductID: productID,
			Date:      end.AddDate(0, 0, -i),
			Quantity:  qty,
		})
	}
	return out
}
