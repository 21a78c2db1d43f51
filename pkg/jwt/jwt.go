package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAuthenticated rol que GoTrue asigna a usuarios con sesión.
const RoleAuthenticated = "authenticated"

// UserMetadata metadata pública del usuario embebida en el token (formato GoTrue).
type UserMetadata struct {
	Name string `json:"name,omitempty"`
}

// Claims claims de un access token con el mismo formato que emite Supabase Auth:
// sub = id de usuario, email, role y user_metadata.
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// Generate genera un token HS256 firmado para el usuario.
func Generate(secret, userID, email, name, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{RoleAuthenticated},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:        email,
		Role:         RoleAuthenticated,
		UserMetadata: UserMetadata{Name: name},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración e issuer (si se indica) y devuelve los claims.
func Parse(secret, issuer, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token sin sub")
	}
	return claims, nil
}
