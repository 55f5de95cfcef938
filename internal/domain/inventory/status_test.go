package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-register/internal/domain/inventory"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		name    string
		qty     int64
		reorder int64
		want    inventory.StockStatus
	}{
		{"cero con umbral 0", 0, 0, inventory.StatusOutOfStock},
		{"cero con umbral", 0, 10, inventory.StatusOutOfStock},
		{"negativo", -3, 10, inventory.StatusOutOfStock},
		{"uno", 1, 10, inventory.StatusLowStock},
		{"igual al umbral", 10, 10, inventory.StatusLowStock},
		{"sobre el umbral", 11, 10, inventory.StatusInStock},
		{"positivo con umbral 0", 1, 0, inventory.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Classify(tc.qty, tc.reorder))
		})
	}
}
