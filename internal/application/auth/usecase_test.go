package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/application/auth"
	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

type stubVerifier struct {
	id  *ports.Identity
	err error
}

func (s stubVerifier) Verify(context.Context, string) (*ports.Identity, error) { return s.id, s.err }

type stubProvider struct {
	calls int
	err   error
}

func (s *stubProvider) CreateUser(_ context.Context, email, _, name string) (*entity.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &entity.User{ID: "u1", Email: email, Name: name}, nil
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	uc := auth.NewAuthUseCase(stubVerifier{id: &ports.Identity{UserID: "u1"}}, &stubProvider{})
	id, err := uc.Authenticate(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)

	_, err = uc.Authenticate(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	uc = auth.NewAuthUseCase(stubVerifier{id: &ports.Identity{}}, &stubProvider{})
	_, err = uc.Authenticate(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario sin id")

	uc = auth.NewAuthUseCase(stubVerifier{err: errors.New("timeout")}, &stubProvider{})
	_, err = uc.Authenticate(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "fallo del proveedor es 401")
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	p := &stubProvider{}
	uc := auth.NewAuthUseCase(stubVerifier{}, p)

	out, err := uc.Signup(ctx, dto.SignupRequest{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "u1", out.User.ID)

	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "ana@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, p.calls, "campos faltantes no llegan al proveedor")
}

func TestSignup_RechazoDelProveedor(t *testing.T) {
	uc := auth.NewAuthUseCase(stubVerifier{}, &stubProvider{err: domain.NewIdentityError("Password should be at least 6 characters.")})

	_, err := uc.Signup(context.Background(), dto.SignupRequest{Email: "a@b.co", Password: "1", Name: "A"})
	var idErr *domain.IdentityError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "Password should be at least 6 characters.", idErr.Message)
}
