package inventory

import "github.com/jhoicas/inventario-kv/internal/domain/entity"

// Stats métricas derivadas del conjunto completo de productos (no del filtrado).
type Stats struct {
	Products int `json:"products"`
	Units    int `json:"units"`
	Alerts   int `json:"alerts"`
}

// Summarize cuenta productos, suma unidades y cuenta los que están en o bajo el mínimo.
func Summarize(items []entity.InventoryItem) Stats {
	s := Stats{Products: len(items)}
	for _, it := range items {
		s.Units += it.Quantity
		if NeedsRestock(it.Quantity, it.MinStock) {
			s.Alerts++
		}
	}
	return s
}
