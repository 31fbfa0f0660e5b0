package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
	"github.com/tu-usuario/stock-advisor/internal/domain/repository"
)

// snapshot es la foto en memoria del histórico sobre la que corre un análisis
// completo. Se carga una vez al inicio de cada corrida; escrituras
// concurrentes al almacén durante la corrida no se reflejan (consistencia
// eventual aceptable para un reporte consultivo).
type snapshot struct {
	today time.Time

	products map[int64]entity.Product
	order    []int64 // ids en orden de catálogo, para salida estable

	sales          []entity.SalesRecord // filas válidas (fecha legible, producto conocido)
	salesByProduct map[int64][]entity.SalesRecord
	soldTotal      map[int64]float64
	stockInTotal   map[int64]float64
	earliestExpiry map[int64]time.Time
	links          map[int64]entity.ProductStorageLink
	units          map[string]map[int64]entity.StorageUnit

	firstSale time.Time // venta más antigua de toda la tabla; cero si no hay ventas
}

// loadSnapshot lee las cinco tablas por el puerto de histórico y arma los
// índices. Filas de venta/stock que apuntan a productos desconocidos o con
// fecha ilegible se descartan sin error; un almacén caído sí es fatal para la
// corrida.
func loadSnapshot(ctx context.Context, repo repository.HistoryRepository, today time.Time) (*snapshot, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	sales, err := repo.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar ventas: %w", err)
	}
	stock, err := repo.ListStockTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos de stock: %w", err)
	}
	units, err := repo.ListStorageUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar unidades de almacenamiento: %w", err)
	}
	links, err := repo.ListStorageLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar vínculos de almacenamiento: %w", err)
	}

	s := &snapshot{
		today:          today,
		products:       make(map[int64]entity.Product, len(products)),
		order:          make([]int64, 0, len(products)),
		salesByProduct: make(map[int64][]entity.SalesRecord),
		soldTotal:      make(map[int64]float64),
		stockInTotal:   make(map[int64]float64),
		earliestExpiry: make(map[int64]time.Time),
		links:          make(map[int64]entity.ProductStorageLink, len(links)),
		units:          map[string]map[int64]entity.StorageUnit{},
	}

	for _, p := range products {
		s.products[p.ID] = p
		s.order = append(s.order, p.ID)
	}

	for _, sale := range sales {
		if sale.Date.IsZero() {
			continue // fecha ilegible: fuera de la agregación
		}
		if _, ok := s.products[sale.ProductID]; !ok {
			continue // venta huérfana: sin producto en el catálogo
		}
		s.sales = append(s.sales, sale)
		s.salesByProduct[sale.ProductID] = append(s.salesByProduct[sale.ProductID], sale)
		s.soldTotal[sale.ProductID] += sale.Quantity
		if s.firstSale.IsZero() || sale.Date.Before(s.firstSale) {
			s.firstSale = sale.Date
		}
	}

	for _, tx := range stock {
		if _, ok := s.products[tx.ProductID]; !ok {
			continue
		}
		s.stockInTotal[tx.ProductID] += tx.Quantity
		if tx.HasExpiry() {
			cur, ok := s.earliestExpiry[tx.ProductID]
			if !ok || tx.ExpiryDate.Before(cur) {
				s.earliestExpiry[tx.ProductID] = tx.ExpiryDate
			}
		}
	}

	for _, u := range units {
		byID := s.units[u.Type]
		if byID == nil {
			byID = make(map[int64]entity.StorageUnit)
			s.units[u.Type] = byID
		}
		byID[u.ID] = u
	}

	for _, l := range links {
		if _, ok := s.products[l.ProductID]; !ok {
			continue
		}
		s.links[l.ProductID] = l // a lo sumo un vínculo activo por producto
	}

	return s, nil
}

// currentStock stock actual de un producto: entradas menos vendido, truncado
// en cero (stock computado negativo se trata como cero, nunca como error).
func (s *snapshot) currentStock(productID int64) float64 {
	v := s.stockInTotal[productID] - s.soldTotal[productID]
	if v < 0 {
		return 0
	}
	return v
}

// storageFor devuelve la unidad de almacenamiento vinculada al producto, si
// existe el vínculo y la unidad.
func (s *snapshot) storageFor(productID int64) (entity.StorageUnit, entity.ProductStorageLink, bool) {
	link, ok := s.links[productID]
	if !ok {
		return entity.StorageUnit{}, entity.ProductStorageLink{}, false
	}
	unit, ok := s.units[link.StorageType][link.StorageID]
	if !ok {
		return entity.StorageUnit{}, link, false
	}
	return unit, link, true
}

// globalSpanDays días desde la venta más antigua de la tabla hasta hoy, piso 1.
func (s *snapshot) globalSpanDays() int {
	if s.firstSale.IsZero() {
		return 1
	}
	span := int(s.today.Sub(s.firstSale).Hours() / 24)
	if span < 1 {
		return 1
	}
	return span
}

// daysUntil días calendario de today a t (negativo si ya pasó).
func daysUntil(today, t time.Time) int {
	return int(t.Sub(today).Hours() / 24)
}

// round2 y round1 redondeos de presentación usados en todos los DTOs.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
