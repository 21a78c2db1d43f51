package ports

import (
	"context"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

// Identity identidad verificada del llamador. UserID es el namespace de sus productos.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// IdentityVerifier verifica un bearer token contra el proveedor de identidad.
// Cualquier fallo (token inválido, expirado o sin usuario) se trata como no autorizado; no hay reintentos.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// IdentityProvider creación administrativa de usuarios (email auto-confirmado).
// Un rechazo del proveedor se devuelve como *domain.IdentityError con su mensaje original.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, name string) (*entity.User, error)
}

// PasswordAuthenticator login con email y password (grant "password" de GoTrue).
type PasswordAuthenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*dto.TokenResponse, error)
}
