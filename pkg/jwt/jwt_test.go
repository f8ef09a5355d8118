package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_ConservaUsuarioRolEmisor(t *testing.T) {
	tok, err := Generate(secret, "u-1", RolePlanner, "ppic-api", 5)
	require.NoError(t, err)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, RolePlanner, claims.Role)
	assert.Equal(t, "ppic-api", claims.Issuer)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestParse_FirmaDistinta_Error(t *testing.T) {
	tok, err := Generate(secret, "u-1", RoleAdmin, "ppic-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado_Error(t *testing.T) {
	tok, err := Generate(secret, "u-1", RoleAdmin, "ppic-api", -1)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio_Error(t *testing.T) {
	_, err := Generate("", "u-1", RoleAdmin, "ppic-api", 5)
	assert.Error(t, err)

	_, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
