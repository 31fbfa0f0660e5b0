package entity

import "time"

// SalesRecord representa una línea de venta registrada en caja.
// El ledger es append-only: nunca se modifica, solo se insertan lotes al
// cerrar una venta.
type SalesRecord struct {
	ID        int64
	ProductID int64
	Date      time.Time // cero = fecha ilegible en el origen; la fila se excluye de la agregación
	Quantity  float64   // unidades vendidas, >= 0
	IssuedBy  string
}
