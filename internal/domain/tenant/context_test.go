package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

func TestManager(t *testing.T) {
	tests := []struct {
		name string
		ctx  tenant.Context
		want error
	}{
		{"gestor com organização", tenant.Context{Role: entity.RoleGestor, OrganizationID: "org-1"}, nil},
		{"super admin com organização", tenant.Context{Role: entity.RoleSuperAdmin, OrganizationID: "org-1"}, nil},
		{"vendedor bloqueado", tenant.Context{Role: entity.RoleVendedor, OrganizationID: "org-1"}, domain.ErrForbidden},
		{"gestor sem organização", tenant.Context{Role: entity.RoleGestor}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Manager()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeller_ExigeEmpresaAtiva(t *testing.T) {
	ctx := tenant.Context{Role: entity.RoleVendedor, OrganizationID: "org-1"}
	_, err := ctx.Seller()
	assert.ErrorIs(t, err, domain.ErrNoActiveCompany)

	ctx.ActiveCompanyID = "emp-1"
	companyID, err := ctx.Seller()
	require.NoError(t, err)
	assert.Equal(t, "emp-1", companyID)
}

func TestSeller_GestorBloqueado(t *testing.T) {
	ctx := tenant.Context{Role: entity.RoleGestor, OrganizationID: "org-1", ActiveCompanyID: "emp-1"}
	_, err := ctx.Seller()
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOwns(t *testing.T) {
	ctx := tenant.Context{Role: entity.RoleGestor, OrganizationID: "org-1"}
	assert.True(t, ctx.Owns("org-1"))
	assert.False(t, ctx.Owns("org-2"))
	assert.False(t, tenant.Context{Role: entity.RoleSuperAdmin}.Owns(""))
}
