package entity

import "time"

// StockTransaction representa un movimiento del ledger de stock (entrada o ajuste).
// Quantity lleva signo. El stock actual de un producto es la suma de sus
// movimientos menos lo vendido, nunca negativo (se trunca en cero).
type StockTransaction struct {
	ID         int64
	ProductID  int64
	Date       time.Time // cero = fecha ilegible
	Quantity   float64
	Note       string
	ExpiryDate time.Time // cero = lote sin vencimiento
}

// HasExpiry indica si el lote recibido tiene fecha de vencimiento registrada.
func (t StockTransaction) HasExpiry() bool {
	return !t.ExpiryDate.IsZero()
}
