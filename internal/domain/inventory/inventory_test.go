package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		q, min int
		want   inventory.Status
		label  string
	}{
		{0, 5, inventory.StatusOutOfStock, "Sin stock"},
		{0, 0, inventory.StatusOutOfStock, "Sin stock"},
		{3, 5, inventory.StatusLowStock, "Stock bajo"},
		{5, 5, inventory.StatusLowStock, "Stock bajo"},
		{6, 5, inventory.StatusInStock, "En stock"},
		{1, 0, inventory.StatusInStock, "En stock"},
	}
	for _, tc := range cases {
		got := inventory.Classify(tc.q, tc.min)
		assert.Equal(t, tc.want, got, "q=%d min=%d", tc.q, tc.min)
		assert.Equal(t, tc.label, got.Label())
	}
	assert.Equal(t, "STOCK BAJO", inventory.StatusLowStock.ReportLabel())
}

func TestAlert(t *testing.T) {
	assert.Equal(t, inventory.AlertCritical, inventory.Alert(0, 0))
	assert.Equal(t, inventory.AlertCritical, inventory.Alert(3, 5), "ceil(5/2)=3")
	assert.Equal(t, inventory.AlertWarning, inventory.Alert(4, 5))
	assert.Equal(t, inventory.AlertWarning, inventory.Alert(5, 5))
	assert.Equal(t, inventory.AlertNone, inventory.Alert(6, 5))
	assert.Equal(t, inventory.AlertCritical, inventory.Alert(2, 4))
	assert.Equal(t, inventory.AlertWarning, inventory.Alert(3, 4))
}

func TestItemKey(t *testing.T) {
	key, err := inventory.ItemKey("u1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "products:u1:abc", key)
	assert.Equal(t, "products:u1:", inventory.OwnerPrefix("u1"))

	for _, bad := range [][2]string{{"", "abc"}, {"u1", ""}, {"u1", "a:b"}, {"u:1", "abc"}} {
		_, err := inventory.ItemKey(bad[0], bad[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%v", bad)
	}
}

func TestCheckOwnership(t *testing.T) {
	item := &entity.InventoryItem{ID: "1", OwnerID: "u1"}
	assert.NoError(t, inventory.CheckOwnership("u1", item))
	assert.ErrorIs(t, inventory.CheckOwnership("u2", item), domain.ErrNotFound)
	assert.ErrorIs(t, inventory.CheckOwnership("u1", nil), domain.ErrNotFound)
	assert.ErrorIs(t, inventory.CheckOwnership("", item), domain.ErrNotFound)
}

func TestSummarize(t *testing.T) {
	s := inventory.Summarize([]entity.InventoryItem{
		{Quantity: 0, MinStock: 1},
		{Quantity: 2, MinStock: 2},
		{Quantity: 10, MinStock: 2},
	})
	assert.Equal(t, inventory.Stats{Products: 3, Units: 12, Alerts: 2}, s)
	assert.Equal(t, inventory.Stats{}, inventory.Summarize(nil))
}
