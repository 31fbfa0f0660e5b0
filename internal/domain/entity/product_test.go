package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/stock-advisor/internal/domain/entity"
)

// TestSearchKeyword_Transliteracion la frase de búsqueda se pliega a ASCII
// antes de salir hacia el proveedor de tendencias. La frase es además la
// clave del caché de scores: sin el plegado, "Azúcar" y "Azucar" duplicarían
// entradas y llamadas remotas.
func TestSearchKeyword_Transliteracion(t *testing.T) {
	cases := []struct {
		name    string
		product entity.Product
		want    string
	}{
		{
			name:    "marca y nombre con acentos",
			product: entity.Product{Name: "Azúcar Refinada", Brand: "La Cañera"},
			want:    "La Canera Azucar Refinada",
		},
		{
			name:    "sin marca",
			product: entity.Product{Name: "Café Torrado"},
			want:    "Cafe Torrado",
		},
		{
			name:    "diacríticos variados",
			product: entity.Product{Name: "Çikolata", Brand: "Ülker"},
			want:    "Ulker Cikolata",
		},
		{
			name:    "ascii puro pasa intacto",
			product: entity.Product{Name: "Leche Entera", Brand: "Vaquita"},
			want:    "Vaquita Leche Entera",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.product.SearchKeyword())
		})
	}
}
