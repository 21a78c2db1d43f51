package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-kv/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventario-test"
	testExpMin    = 60
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@example.com", "Ana", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.UserMetadata.Name)
	assert.Equal(t, pkgjwt.RoleAuthenticated, claims.Role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", "", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", "", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", testIssuer, tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_IssuerDistinto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", "", "otro", testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, "", tok)
	assert.NoError(t, err, "sin issuer esperado no se valida")
}

func TestJWT_SinSubject_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "", "", "", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "", "", testIssuer, testExpMin)
	assert.Error(t, err)
}
