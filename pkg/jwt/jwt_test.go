package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "admin", "saldos-api-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "analista", "saldos-api-test", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "analista", "saldos-api-test", -1)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, tok)
	assert.Error(t, err, "un token con expiración en el pasado debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "iss", 60)
	assert.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := Parse(testSecret, "no.es.jwt")
	assert.Error(t, err)
}
