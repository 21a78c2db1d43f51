package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD de productos, siempre acotados al owner autenticado.
type InventoryUseCase struct {
	repo  repository.ItemRepository
	now   func() time.Time
	newID func() string
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.ItemRepository) *InventoryUseCase {
	return &InventoryUseCase{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// Create valida los cuatro campos y persiste un producto nuevo con id y owner asignados por el servidor.
// Si falta algún campo devuelve ErrInvalidInput sin escribir nada.
func (uc *InventoryUseCase) Create(ctx context.Context, ownerID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" || in.Quantity == nil || in.MinStock == nil {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.InventoryItem{
		ID:        uc.newID(),
		OwnerID:   ownerID,
		Name:      name,
		Category:  category,
		Quantity:  int(*in.Quantity),
		MinStock:  int(*in.MinStock),
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List devuelve todos los productos del owner (sin paginar). Nunca devuelve nil.
func (uc *InventoryUseCase) List(ctx context.Context, ownerID string) (*dto.ProductListResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToItemResponse(&items[i]))
	}
	return &dto.ProductListResponse{Products: out}, nil
}

// UpdateQuantity reemplaza quantity y updatedAt de un producto existente del owner.
// No aplica piso en cero: el cliente es quien recorta los decrementos.
func (uc *InventoryUseCase) UpdateQuantity(ctx context.Context, ownerID, id string, in dto.UpdateQuantityRequest) (*dto.ItemResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Quantity == nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := inventory.CheckOwnership(ownerID, item); err != nil {
		return nil, err
	}
	now := uc.now()
	item.Quantity = int(*in.Quantity)
	item.UpdatedAt = &now
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Delete elimina sin comprobar existencia; borrar dos veces el mismo id es éxito ambas veces.
func (uc *InventoryUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	err := uc.repo.Delete(ctx, ownerID, id)
	if errors.Is(err, domain.ErrInvalidInput) {
		// Un id que no puede formar clave no puede existir.
		return nil
	}
	return err
}

// ToItemResponse mapea la entidad a su DTO con el estado derivado.
func ToItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		MinStock:  it.MinStock,
		UserID:    it.OwnerID,
		Status:    string(inventory.Classify(it.Quantity, it.MinStock)),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// FromItemResponse mapea el DTO de vuelta a la entidad (lo usa el cliente).
func FromItemResponse(r dto.ItemResponse) entity.InventoryItem {
	return entity.InventoryItem{
		ID:        r.ID,
		OwnerID:   r.UserID,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		MinStock:  r.MinStock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
