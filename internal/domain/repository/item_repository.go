package repository

import (
	"context"

	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Todas las operaciones están acotadas al namespace del ownerID recibido.
type ItemRepository interface {
	Save(ctx context.Context, item *entity.InventoryItem) error
	// GetByID devuelve nil, nil si no existe un producto con ese id para ese owner.
	GetByID(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.InventoryItem, error)
	Delete(ctx context.Context, ownerID, id string) error
}
