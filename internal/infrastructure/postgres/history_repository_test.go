package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-advisor/internal/domain"
)

// TestCoerceDate las columnas de fecha heredadas mezclan formatos; todo lo
// ilegible cae al cero de time.Time y se descarta aguas arriba.
func TestCoerceDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"fecha pura", "2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"timestamp", "2024-03-10 15:04:05", time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)},
		{"rfc3339", "2024-03-10T15:04:05Z", time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)},
		{"vacía", "", time.Time{}},
		{"basura", "hace dos semanas", time.Time{}},
		{"formato regional", "10/03/2024", time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerceDate(tc.in))
		})
	}
}

// TestStoreErr el error envuelto conserva la marca de almacén caído y la
// causa original.
func TestStoreErr(t *testing.T) {
	cause := errors.New("connection refused")
	err := storeErr("history.ListSales", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "history.ListSales")
}
