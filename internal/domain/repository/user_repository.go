package repository

import (
	"context"

	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

// UserRepository persistencia de usuarios del proveedor de identidad local.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
