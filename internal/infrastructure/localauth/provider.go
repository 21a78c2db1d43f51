// Package localauth proveedor de identidad embebido para desarrollo y despliegues sin Supabase.
// Emite tokens HS256 con el mismo formato de claims que GoTrue y guarda usuarios en el store clave-valor.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
	"github.com/jhoicas/inventario-kv/pkg/jwt"
)

var (
	_ ports.IdentityVerifier      = (*Provider)(nil)
	_ ports.IdentityProvider      = (*Provider)(nil)
	_ ports.PasswordAuthenticator = (*Provider)(nil)
)

// Mensajes con el mismo texto que devuelve GoTrue.
const (
	msgEmailExists        = "A user with this email address has already been registered"
	msgInvalidCredentials = "Invalid login credentials"
	msgPasswordTooShort   = "Password should be at least 6 characters."
	minPasswordLength     = 6
)

// Config firma de tokens.
type Config struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// Provider verificador, creador de usuarios y login por password.
type Provider struct {
	users repository.UserRepository
	cfg   Config
	now   func() time.Time
}

// NewProvider construye el proveedor.
func NewProvider(users repository.UserRepository, cfg Config) *Provider {
	if cfg.ExpMinutes <= 0 {
		cfg.ExpMinutes = 60
	}
	return &Provider{users: users, cfg: cfg, now: time.Now}
}

// Verify valida firma, expiración e issuer del token.
func (p *Provider) Verify(_ context.Context, token string) (*ports.Identity, error) {
	claims, err := jwt.Parse(p.cfg.Secret, p.cfg.Issuer, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &ports.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.UserMetadata.Name,
	}, nil
}

// CreateUser hashea el password con bcrypt y persiste. Rechazos de validación o email duplicado
// se devuelven como *domain.IdentityError.
func (p *Provider) CreateUser(ctx context.Context, email, password, name string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, domain.NewIdentityError("Unable to validate email address: invalid format")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewIdentityError(msgPasswordTooShort)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.NewIdentityError(msgEmailExists)
		}
		return nil, err
	}
	return user, nil
}

// SignInWithPassword verifica email/password y emite un access token.
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewIdentityError(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewIdentityError(msgInvalidCredentials)
	}
	token, err := jwt.Generate(p.cfg.Secret, user.ID, user.Email, user.Name, p.cfg.Issuer, p.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   p.cfg.ExpMinutes * 60,
		User: &dto.AuthUser{
			ID:           user.ID,
			Email:        user.Email,
			UserMetadata: dto.UserMetadata{Name: user.Name},
		},
	}, nil
}
