package audit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

func TestDiff_IgnoraValoresIguais(t *testing.T) {
	var d Diff
	d.Add("preco", decimal.RequireFromString("10"), decimal.RequireFromString("10.00"))
	d.Add("nome", "A", "A")
	assert.True(t, d.Empty())

	d.Add("nome", "A", "B")
	assert.Equal(t, Diff{{Field: "nome", Old: "A", New: "B"}}, d)
}

func TestNew_PreencheAtorEIP(t *testing.T) {
	tc := tenant.Context{UserID: "u1", OrganizationID: "org1", Role: entity.RoleGestor, ClientIP: "10.0.0.1"}
	var d Diff
	d.Set("nome", "Empresa X")

	log := New(tc, "", entity.AuditCreate, "empresa", "e1", d)
	assert.Equal(t, "org1", *log.OrganizationID)
	assert.Equal(t, "u1", *log.UserID)
	assert.Equal(t, "10.0.0.1", log.IPAddress)
	assert.Len(t, log.Changes, 1)
	assert.NotEmpty(t, log.ID)

	admin := tenant.Context{UserID: "root", Role: entity.RoleSuperAdmin}
	log = New(admin, "org2", entity.AuditUpdate, "organizacao", "org2", nil)
	assert.Equal(t, "org2", *log.OrganizationID)
	assert.Nil(t, New(tenant.Context{}, "", entity.AuditLogin, "usuario", "x", nil).UserID)
}
