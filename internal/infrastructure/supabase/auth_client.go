// Package supabase adaptador del proveedor de identidad Supabase Auth (GoTrue) sobre supabase-community/auth-go.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
)

// Verificar en tiempo de compilación que AuthClient implementa los puertos de identidad.
var (
	_ ports.IdentityVerifier      = (*AuthClient)(nil)
	_ ports.IdentityProvider      = (*AuthClient)(nil)
	_ ports.PasswordAuthenticator = (*AuthClient)(nil)
)

const maxErrorBody = 1 << 20

// AuthClient cliente de GoTrue. apiKey es la service role key en el servidor o la anon key en el cliente.
type AuthClient struct {
	api       auth.Client
	apiKey    string
	timeout   time.Duration
	transport http.RoundTripper
}

// NewAuthClient construye el cliente. baseURL es la URL del proyecto (https://<ref>.supabase.co);
// timeout 0 deja la duración de cada llamada al ctx.
func NewAuthClient(baseURL, apiKey string, timeout time.Duration) *AuthClient {
	authURL := strings.TrimRight(baseURL, "/") + "/auth/v1"
	return &AuthClient{
		api:       auth.New("", apiKey).WithCustomAuthURL(authURL),
		apiKey:    apiKey,
		timeout:   timeout,
		transport: http.DefaultTransport,
	}
}

// Verify valida el token con GET /auth/v1/user. Cualquier respuesta no 2xx es ErrUnauthorized.
func (c *AuthClient) Verify(ctx context.Context, token string) (*ports.Identity, error) {
	var user *types.UserResponse
	ex, err := c.call(ctx, token, func(api auth.Client) (err error) {
		user, err = api.GetUser()
		return err
	})
	if ex.status == 0 && err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !ex.ok() {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUnauthorized, ex.status, ex.body.Text())
	}
	if err != nil || user == nil || user.ID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return &ports.Identity{UserID: user.ID.String(), Email: user.Email, Name: metadataName(user.UserMetadata)}, nil
}

// CreateUser crea el usuario con POST /auth/v1/admin/users y email_confirm=true.
// 4xx se devuelve como *domain.IdentityError con el mensaje del proveedor; 5xx o red como error interno.
func (c *AuthClient) CreateUser(ctx context.Context, email, password, name string) (*entity.User, error) {
	req := types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"name": name},
	}
	var resp *types.AdminCreateUserResponse
	ex, err := c.call(ctx, c.apiKey, func(api auth.Client) (err error) {
		resp, err = api.AdminCreateUser(req)
		return err
	})
	if ex.status/100 == 4 {
		return nil, domain.NewIdentityError(ex.body.Text())
	}
	if !ex.ok() {
		return nil, fmt.Errorf("supabase: create user: status %d: %v", ex.status, err)
	}
	if err != nil {
		return nil, fmt.Errorf("supabase: create user: %w", err)
	}
	return &entity.User{ID: resp.ID.String(), Email: resp.Email, Name: metadataName(resp.UserMetadata)}, nil
}

// SignInWithPassword inicia sesión con POST /auth/v1/token?grant_type=password.
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var tok *types.TokenResponse
	ex, err := c.call(ctx, "", func(api auth.Client) (err error) {
		tok, err = api.SignInWithEmailPassword(email, password)
		return err
	})
	if ex.status/100 == 4 {
		return nil, domain.NewIdentityError(ex.body.Text())
	}
	if !ex.ok() {
		return nil, fmt.Errorf("supabase: sign in: status %d: %v", ex.status, err)
	}
	if err != nil {
		return nil, fmt.Errorf("supabase: sign in: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("supabase: sign in: respuesta sin access_token")
	}
	return &dto.TokenResponse{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
		RefreshToken: tok.RefreshToken,
		User: &dto.AuthUser{
			ID:           tok.User.ID.String(),
			Email:        tok.User.Email,
			UserMetadata: dto.UserMetadata{Name: metadataName(tok.User.UserMetadata)},
		},
	}, nil
}

// SignOut revoca la sesión con POST /auth/v1/logout. Cualquier 2xx es éxito.
func (c *AuthClient) SignOut(ctx context.Context, token string) error {
	ex, err := c.call(ctx, token, func(api auth.Client) error {
		return api.Logout()
	})
	if !ex.ok() {
		return fmt.Errorf("supabase: sign out: status %d: %s: %v", ex.status, ex.body.Text(), err)
	}
	return nil
}

// exchange status y cuerpo de error GoTrue de la última respuesta de una llamada.
type exchange struct {
	status int
	body   dto.AuthErrorResponse
}

func (e *exchange) ok() bool { return e.status/100 == 2 }

// call ejecuta op sobre un cliente auth-go cuyo transporte propaga ctx y captura la respuesta.
func (c *AuthClient) call(ctx context.Context, bearer string, op func(auth.Client) error) (*exchange, error) {
	ex := &exchange{}
	api := c.api.WithClient(http.Client{
		Timeout:   c.timeout,
		Transport: &recordingTransport{ctx: ctx, next: c.transport, apiKey: c.apiKey, bearer: bearer, ex: ex},
	})
	if bearer != "" {
		api = api.WithToken(bearer)
	}
	return ex, op(api)
}

// recordingTransport asocia ctx a la petición y guarda status y cuerpo de error en ex.
type recordingTransport struct {
	ctx    context.Context
	next   http.RoundTripper
	apiKey string
	bearer string
	ex     *exchange
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(t.ctx)
	if req.Header.Get("apikey") == "" {
		req.Header.Set("apikey", t.apiKey)
	}
	if t.bearer != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+t.bearer)
	}
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.ex.status = resp.StatusCode
	if resp.StatusCode/100 != 2 {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("leer respuesta: %w", err)
		}
		_ = json.Unmarshal(raw, &t.ex.body)
		resp.Body = io.NopCloser(bytes.NewReader(raw))
	}
	return resp, nil
}

func metadataName(meta map[string]interface{}) string {
	name, _ := meta["name"].(string)
	return name
}
