package entity

import (
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Product representa un producto del catálogo.
// Los precios van en decimal; las cantidades y el volumen unitario en float64.
// DiscountPrice solo es válido mientras exista DiscountUntil (invariante del catálogo).
type Product struct {
	ID            int64
	Name          string
	Brand         string
	Category      string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	DiscountPrice decimal.Decimal // Zero si no hay campaña activa
	DiscountUntil time.Time       // cero = sin campaña
	UnitVolume    float64         // 0 = desconocido; para cálculos de capacidad se asume 1
	HasDiscount   bool
}

// EffectivePrice devuelve el precio vigente a la fecha dada: el precio de
// campaña si la campaña sigue abierta, si no el precio de venta normal.
func (p Product) EffectivePrice(today time.Time) decimal.Decimal {
	if p.HasDiscount && !p.DiscountUntil.IsZero() && !p.DiscountUntil.Before(today) {
		return p.DiscountPrice
	}
	return p.SellingPrice
}

// VolumeOrDefault devuelve el volumen unitario, o 1 cuando no está registrado.
func (p Product) VolumeOrDefault() float64 {
	if p.UnitVolume > 0 {
		return p.UnitVolume
	}
	return 1
}

// asciiFold descompone acentos y descarta las marcas diacríticas (NFD + Mn).
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SearchKeyword arma la frase de búsqueda para el score de tendencias:
// marca + nombre, transliterada a ASCII. La frase es también la clave del
// caché de scores, así "Azúcar" y "Azucar" comparten entrada.
func (p Product) SearchKeyword() string {
	keyword := p.Name
	if p.Brand != "" {
		keyword = p.Brand + " " + p.Name
	}
	folded, _, err := transform.String(asciiFold, keyword)
	if err != nil {
		return keyword
	}
	return folded
}
