package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
)

// AuthUseCase casos de uso de identidad: verificación de bearer tokens y signup delegado.
type AuthUseCase struct {
	verifier ports.IdentityVerifier
	provider ports.IdentityProvider
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(verifier ports.IdentityVerifier, provider ports.IdentityProvider) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, provider: provider}
}

// Authenticate verifica el token y devuelve la identidad. Todo fallo es ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*ports.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrUnauthorized
	}
	id, err := uc.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}

// Signup delega la creación al proveedor de identidad con email auto-confirmado.
// Los rechazos del proveedor se devuelven como *domain.IdentityError para pasar su mensaje al cliente.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.provider.CreateUser(ctx, email, in.Password, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("signup: el proveedor no devolvió usuario")
	}
	return &dto.SignupResponse{
		Success: true,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}
