package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, exp, err := Generate(testSecret, "repcom", 60, Payload{
		UserID: "u-1", OrganizationID: "org-1", Role: "vendedor", ActiveCompanyID: "emp-1",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "emp-1", claims.ActiveCompanyID)
}

func TestParse_SegredoErrado(t *testing.T) {
	token, _, err := Generate(testSecret, "repcom", 60, Payload{UserID: "u-1", Role: "gestor"})
	require.NoError(t, err)
	_, err = Parse("outro-segredo", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	token, _, err := Generate(testSecret, "repcom", -1, Payload{UserID: "u-1", Role: "gestor"})
	require.NoError(t, err)
	_, err = Parse(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "u-1"}, Role: "super_admin"}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = Parse(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_SegredoVazio(t *testing.T) {
	_, _, err := Generate("", "repcom", 60, Payload{UserID: "u-1"})
	assert.Error(t, err)
}
