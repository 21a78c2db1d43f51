package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

const minPasswordLength = 6

var (
	ErrPasswordMismatch = errors.New("las contraseñas no coinciden")
	ErrPasswordTooShort = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrNoSession        = errors.New("no hay sesión activa")
)

// Session sesión autenticada. Se pasa explícitamente a quien la necesite.
type Session struct {
	UserID      string
	Email       string
	Name        string
	AccessToken string
}

// DisplayName nombre para mostrar: nombre, si no email, si no "Usuario".
func (s *Session) DisplayName() string {
	if s == nil {
		return "Usuario"
	}
	u := entity.User{Email: s.Email, Name: s.Name}
	return u.DisplayName()
}

// Authenticator login/logout contra el proveedor de identidad (GoTrue o el proveedor local).
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	SignOut(ctx context.Context, token string) error
}

// Registrar alta de usuarios a través del servicio.
type Registrar interface {
	Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error)
}

// SignupForm formulario de registro con confirmación de contraseña.
type SignupForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Validate se evalúa antes de cualquier llamada de red.
func (f SignupForm) Validate() error {
	if f.Password != f.Confirm {
		return ErrPasswordMismatch
	}
	if len(f.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// SessionManager ciclo de vida de la sesión actual.
type SessionManager struct {
	authn Authenticator
	reg   Registrar

	mu      sync.RWMutex
	current *Session
}

// NewSessionManager construye el manager.
func NewSessionManager(authn Authenticator, reg Registrar) *SessionManager {
	return &SessionManager{authn: authn, reg: reg}
}

// Login inicia sesión y la deja como actual.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*Session, error) {
	tok, err := m.authn.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	s := &Session{AccessToken: tok.AccessToken, Email: email}
	if tok.User != nil {
		s.UserID = tok.User.ID
		s.Email = tok.User.Email
		s.Name = tok.User.UserMetadata.Name
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Signup valida el formulario y registra el usuario. No inicia sesión.
func (m *SessionManager) Signup(ctx context.Context, f SignupForm) (*dto.SignupResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return m.reg.Signup(ctx, dto.SignupRequest{Email: f.Email, Password: f.Password, Name: f.Name})
}

// Logout cierra la sesión remota y descarta la local aunque la remota falle.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()
	if s == nil {
		return ErrNoSession
	}
	return m.authn.SignOut(ctx, s.AccessToken)
}

// Expire descarta la sesión local sin llamar al proveedor; se usa cuando el servicio rechaza el token.
// Devuelve la sesión descartada o nil.
func (m *SessionManager) Expire() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.current
	m.current = nil
	return s
}

// Current sesión actual o nil.
func (m *SessionManager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
