package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const (
	userByIDPrefix    = "users:id:"
	userByEmailPrefix = "users:email:"
)

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepo usuarios del proveedor de identidad local guardados en el mismo store clave-valor.
// Se indexan por id y por email normalizado.
type UserRepo struct {
	store repository.KeyValueStore
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store repository.KeyValueStore) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste el usuario; ErrEmailAlreadyExists si el email ya está indexado.
// No es atómico entre réplicas: el store no ofrece transacciones.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	b, err := json.Marshal(userRecord{
		ID:           user.ID,
		Email:        normalizeEmail(user.Email),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := r.store.Set(ctx, userByIDPrefix+user.ID, b); err != nil {
		return err
	}
	idx, err := json.Marshal(user.ID)
	if err != nil {
		return fmt.Errorf("marshal user index: %w", err)
	}
	return r.store.Set(ctx, userByEmailPrefix+normalizeEmail(user.Email), idx)
}

// FindByEmail busca por email (sin distinguir mayúsculas); nil, nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	b, err := r.store.Get(ctx, userByEmailPrefix+normalizeEmail(email))
	if err != nil || b == nil {
		return nil, err
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return nil, fmt.Errorf("decode user index: %w", err)
	}
	return r.FindByID(ctx, id)
}

// FindByID busca por id; nil, nil si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	b, err := r.store.Get(ctx, userByIDPrefix+id)
	if err != nil || b == nil {
		return nil, err
	}
	var rec userRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &entity.User{
		ID:           rec.ID,
		Email:        rec.Email,
		Name:         rec.Name,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
