package dto

// SignupRequest body de POST /signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse usuario creado (sin password).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SignupResponse salida de POST /signup.
type SignupResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UserMetadata metadata de usuario en formato GoTrue.
type UserMetadata struct {
	Name string `json:"name,omitempty"`
}

// AuthUser usuario tal como lo devuelve el proveedor de identidad (GoTrue).
type AuthUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// PasswordGrantRequest body de POST /auth/v1/token?grant_type=password.
type PasswordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse sesión emitida por el proveedor de identidad.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         *AuthUser `json:"user"`
}

// AuthErrorResponse error del proveedor de identidad en formato GoTrue.
type AuthErrorResponse struct {
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Message          string `json:"message,omitempty"`
}

// Text devuelve el primer mensaje legible disponible.
func (e AuthErrorResponse) Text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}
