package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-advisor/internal/domain"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo adaptador de lectura del histórico sobre PostgreSQL. Todas las
// consultas son read-only; el motor nunca escribe en estas tablas.
//
// Las columnas de fecha se leen como texto y se interpretan con coerceDate:
// una fecha ilegible queda como time.Time cero y la capa de aplicación decide
// qué filas descartar.
type HistoryRepo struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository construye el adaptador de histórico.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

// ListProducts devuelve el catálogo completo.
func (r *HistoryRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	const query = `
	SELECT
	    product_id,
	    product_name,
	    COALESCE(brand,    '')        AS brand,
	    COALESCE(category, '')        AS category,
	    COALESCE(cost_price,    0)    AS cost_price,
	    COALESCE(selling_price, 0)    AS selling_price,
	    discount_price,
	    COALESCE(discount_until::TEXT, '') AS discount_until,
	    COALESCE(unit_volume, 0)      AS unit_volume
	FROM products
	ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("history.ListProducts", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var (
			p             entity.Product
			discountPrice decimal.NullDecimal
			discountUntil string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Brand,
			&p.Category,
			&p.CostPrice,
			&p.SellingPrice,
			&discountPrice,
			&discountUntil,
			&p.UnitVolume,
		); err != nil {
			return nil, storeErr("history.ListProducts scan", err)
		}
		if discountPrice.Valid {
			p.DiscountPrice = discountPrice.Decimal
			p.HasDiscount = true
		}
		p.DiscountUntil = coerceDate(discountUntil)
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListSales devuelve el ledger de ventas completo.
func (r *HistoryRepo) ListSales(ctx context.Context) ([]entity.SalesRecord, error) {
	const query = `
	SELECT
	    id,
	    product_id,
	    COALESCE(date::TEXT, '')  AS date,
	    COALESCE(quantity_sold, 0) AS quantity_sold,
	    COALESCE(issued_by, '')   AS issued_by
	FROM sales
	ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("history.ListSales", err)
	}
	defer rows.Close()

	var sales []entity.SalesRecord
	for rows.Next() {
		var (
			s    entity.SalesRecord
			date string
			qty  int64
		)
		if err := rows.Scan(&s.ID, &s.ProductID, &date, &qty, &s.IssuedBy); err != nil {
			return nil, storeErr("history.ListSales scan", err)
		}
		s.Date = coerceDate(date)
		s.Quantity = float64(qty)
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// ListStockTransactions devuelve el ledger de movimientos de stock.
func (r *HistoryRepo) ListStockTransactions(ctx context.Context) ([]entity.StockTransaction, error) {
	const query = `
	SELECT
	    transaction_id,
	    product_id,
	    COALESCE(date::TEXT, '')        AS date,
	    COALESCE(quantity, 0)           AS quantity,
	    COALESCE(note, '')              AS note,
	    COALESCE(expiry_date::TEXT, '') AS expiry_date
	FROM stock_transactions
	ORDER BY transaction_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("history.ListStockTransactions", err)
	}
	defer rows.Close()

	var txs []entity.StockTransaction
	for rows.Next() {
		var (
			t            entity.StockTransaction
			date, expiry string
			qty          int64
		)
		if err := rows.Scan(&t.ID, &t.ProductID, &date, &qty, &t.Note, &expiry); err != nil {
			return nil, storeErr("history.ListStockTransactions scan", err)
		}
		t.Date = coerceDate(date)
		t.Quantity = float64(qty)
		t.ExpiryDate = coerceDate(expiry)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ListStorageUnits devuelve estantes y refrigeradores unificados.
func (r *HistoryRepo) ListStorageUnits(ctx context.Context) ([]entity.StorageUnit, error) {
	const query = `
	SELECT id, COALESCE(name, '') AS name, 'shelf' AS type,
	       COALESCE(max_capacity, 0) AS max_capacity,
	       COALESCE(location, '') AS location
	FROM shelves
	UNION ALL
	SELECT id, COALESCE(name, '') AS name, 'fridge' AS type,
	       COALESCE(max_capacity, 0) AS max_capacity,
	       COALESCE(location, '') AS location
	FROM fridges
	ORDER BY type, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("history.ListStorageUnits", err)
	}
	defer rows.Close()

	var units []entity.StorageUnit
	for rows.Next() {
		var u entity.StorageUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Type, &u.MaxCapacity, &u.Location); err != nil {
			return nil, storeErr("history.ListStorageUnits scan", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// ListStorageLinks devuelve los vínculos producto-almacenamiento activos.
func (r *HistoryRepo) ListStorageLinks(ctx context.Context) ([]entity.ProductStorageLink, error) {
	const query = `
	SELECT product_id, storage_type, storage_id
	FROM product_storage_links
	ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("history.ListStorageLinks", err)
	}
	defer rows.Close()

	var links []entity.ProductStorageLink
	for rows.Next() {
		var l entity.ProductStorageLink
		if err := rows.Scan(&l.ProductID, &l.StorageType, &l.StorageID); err != nil {
			return nil, storeErr("history.ListStorageLinks scan", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// storeErr envuelve un fallo del almacén marcándolo como ErrStoreUnavailable
// para que la capa HTTP lo distinga de "no hay datos".
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// dateLayouts formatos aceptados en las columnas de fecha heredadas. El origen
// mezcla fechas puras con timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// coerceDate interpreta una fecha en texto. Vacío o ilegible devuelve el cero
// de time.Time; la fila se excluye de la agregación aguas arriba.
func coerceDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
