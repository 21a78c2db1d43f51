package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// itemRecord documento JSON guardado en el store; mismo formato que los registros products:* existentes.
type itemRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Quantity  int        `json:"quantity"`
	MinStock  int        `json:"minStock"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ItemRepo implementación de ItemRepository sobre cualquier KeyValueStore.
// Las claves se obtienen siempre de inventory.ItemKey / inventory.OwnerPrefix.
type ItemRepo struct {
	store repository.KeyValueStore
}

// NewItemRepository construye el repositorio.
func NewItemRepository(store repository.KeyValueStore) *ItemRepo {
	return &ItemRepo{store: store}
}

// Save crea o reemplaza el producto en products:{owner}:{id}.
func (r *ItemRepo) Save(ctx context.Context, item *entity.InventoryItem) error {
	key, err := inventory.ItemKey(item.OwnerID, item.ID)
	if err != nil {
		return err
	}
	b, err := json.Marshal(toRecord(item))
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	return r.store.Set(ctx, key, b)
}

// GetByID obtiene el producto del owner; nil, nil si no existe.
// Devuelve domain.ErrInvalidInput si el id no puede formar una clave.
func (r *ItemRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error) {
	key, err := inventory.ItemKey(ownerID, id)
	if err != nil {
		return nil, err
	}
	b, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	var rec itemRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", key, err)
	}
	return rec.toEntity(), nil
}

// ListByOwner lee todo el namespace del owner en memoria. Registros de otro owner se descartan.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.InventoryItem, error) {
	values, err := r.store.ListByPrefix(ctx, inventory.OwnerPrefix(ownerID))
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryItem, 0, len(values))
	for _, b := range values {
		var rec itemRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		it := rec.toEntity()
		if inventory.CheckOwnership(ownerID, it) != nil {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

// Delete elimina la clave sin comprobar existencia.
func (r *ItemRepo) Delete(ctx context.Context, ownerID, id string) error {
	key, err := inventory.ItemKey(ownerID, id)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, key)
}

func toRecord(it *entity.InventoryItem) itemRecord {
	return itemRecord{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		MinStock:  it.MinStock,
		UserID:    it.OwnerID,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func (rec itemRecord) toEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:        rec.ID,
		OwnerID:   rec.UserID,
		Name:      rec.Name,
		Category:  rec.Category,
		Quantity:  rec.Quantity,
		MinStock:  rec.MinStock,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
