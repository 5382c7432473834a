package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)
	assert.NoError(t, h.Compare(hash, "segredo123"))
	assert.Error(t, h.Compare(hash, "outra"))
}

func TestJWTCodec_IdaEVolta(t *testing.T) {
	c := NewJWTCodec("segredo-de-teste", "repcom-test", 60)
	in := tenant.Context{UserID: "u1", OrganizationID: "o1", Role: entity.RoleVendedor, ActiveCompanyID: "e1"}

	tok, exp, err := c.Issue(in)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	out, err := c.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestJWTCodec_TokenInvalido(t *testing.T) {
	c := NewJWTCodec("segredo-de-teste", "repcom-test", 60)
	_, err := c.Parse("abc.def.ghi")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	expired := NewJWTCodec("segredo-de-teste", "repcom-test", -1)
	tok, _, err := expired.Issue(tenant.Context{UserID: "u1", Role: entity.RoleGestor})
	require.NoError(t, err)
	_, err = c.Parse(tok)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
