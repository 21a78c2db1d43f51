package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/client"
	"github.com/jhoicas/inventario-kv/internal/domain"
)

type fakeAuth struct {
	signIns  int
	signOuts []string
	signups  int
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*dto.TokenResponse, error) {
	f.signIns++
	if password != "secret1" {
		return nil, domain.NewIdentityError("Invalid login credentials")
	}
	return &dto.TokenResponse{
		AccessToken: "tok-" + email,
		User:        &dto.AuthUser{ID: "u1", Email: email, UserMetadata: dto.UserMetadata{Name: "Ana"}},
	}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return nil
}

func (f *fakeAuth) Signup(_ context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	f.signups++
	return &dto.SignupResponse{Success: true, User: dto.UserResponse{ID: "u2", Email: in.Email, Name: in.Name}}, nil
}

func TestSignupForm_Validate(t *testing.T) {
	cases := []struct {
		name string
		form client.SignupForm
		want error
	}{
		{"ok", client.SignupForm{Password: "secret1", Confirm: "secret1"}, nil},
		{"no coinciden", client.SignupForm{Password: "secret1", Confirm: "secret2"}, client.ErrPasswordMismatch},
		{"corta", client.SignupForm{Password: "12345", Confirm: "12345"}, client.ErrPasswordTooShort},
		{"seis exactos", client.SignupForm{Password: "123456", Confirm: "123456"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSessionManager_SignupInvalidoNoLlamaRed(t *testing.T) {
	f := &fakeAuth{}
	m := client.NewSessionManager(f, f)

	_, err := m.Signup(context.Background(), client.SignupForm{Email: "a@b.co", Password: "123", Confirm: "123"})
	assert.ErrorIs(t, err, client.ErrPasswordTooShort)
	assert.Zero(t, f.signups)

	out, err := m.Signup(context.Background(), client.SignupForm{Name: "Beto", Email: "b@b.co", Password: "secret1", Confirm: "secret1"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Nil(t, m.Current(), "el registro no inicia sesión")
}

func TestSessionManager_LoginLogout(t *testing.T) {
	f := &fakeAuth{}
	m := client.NewSessionManager(f, f)

	_, err := m.Login(context.Background(), "ana@example.com", "mala")
	require.Error(t, err)
	assert.Nil(t, m.Current())

	s, err := m.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "Ana", s.DisplayName())
	assert.Same(t, s, m.Current())

	require.NoError(t, m.Logout(context.Background()))
	assert.Nil(t, m.Current())
	assert.Equal(t, []string{"tok-ana@example.com"}, f.signOuts)

	assert.True(t, errors.Is(m.Logout(context.Background()), client.ErrNoSession))
}

func TestSession_DisplayName(t *testing.T) {
	assert.Equal(t, "ana@example.com", (&client.Session{Email: "ana@example.com"}).DisplayName())
	assert.Equal(t, "Usuario", (&client.Session{}).DisplayName())
	var s *client.Session
	assert.Equal(t, "Usuario", s.DisplayName())
}

func TestSessionManager_ExpireDescartaSinRed(t *testing.T) {
	f := &fakeAuth{}
	m := client.NewSessionManager(f, f)
	assert.Nil(t, m.Expire())

	s, err := m.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	assert.Same(t, s, m.Expire())
	assert.Nil(t, m.Current())
	assert.Empty(t, f.signOuts, "expirar no llama al proveedor")
}
