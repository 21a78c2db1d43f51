package entity

import "time"

// InventoryItem representa un producto del inventario de un usuario.
// OwnerID lo asigna el servidor a partir del token verificado; nunca viene del cliente.
// Solo Quantity es mutable después de la creación.
type InventoryItem struct {
	ID        string
	OwnerID   string
	Name      string
	Category  string
	Quantity  int
	MinStock  int // umbral de reposición; solo se usa para el estado derivado
	CreatedAt time.Time
	UpdatedAt *time.Time // nil hasta la primera actualización
}
