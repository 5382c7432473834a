// Package tenant modela o contexto de sessão (organização, perfil e empresa ativa)
// que acompanha cada requisição autenticada.
package tenant

import (
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Context identidade e escopo de tenant extraídos do token de sessão.
type Context struct {
	UserID          string
	OrganizationID  string // vazio para super_admin
	Role            string
	ActiveCompanyID string // selecionada pelo vendedor via select-company
	ClientIP        string // preenchido pelo middleware HTTP, usado na auditoria
}

// IsSuperAdmin indica se o contexto é de administrador do SaaS.
func (c Context) IsSuperAdmin() bool { return c.Role == entity.RoleSuperAdmin }

// HasRole indica se o perfil do contexto está entre roles.
func (c Context) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// RequireRole devolve ErrForbidden se o perfil não estiver entre roles.
func (c Context) RequireRole(roles ...string) error {
	if !c.HasRole(roles...) {
		return domain.ErrForbidden
	}
	return nil
}

// Manager exige perfil gestor (ou super_admin) associado a uma organização.
func (c Context) Manager() error {
	if err := c.RequireRole(entity.RoleGestor, entity.RoleSuperAdmin); err != nil {
		return err
	}
	if c.OrganizationID == "" {
		return domain.NewValidationError("organizacao", "usuário não associado a uma organização")
	}
	return nil
}

// Seller exige perfil vendedor com empresa ativa selecionada e devolve o ID da empresa.
func (c Context) Seller() (string, error) {
	if err := c.RequireRole(entity.RoleVendedor); err != nil {
		return "", err
	}
	if c.OrganizationID == "" {
		return "", domain.NewValidationError("organizacao", "usuário não associado a uma organização")
	}
	if c.ActiveCompanyID == "" {
		return "", domain.ErrNoActiveCompany
	}
	return c.ActiveCompanyID, nil
}

// Owns indica se organizationID pertence ao tenant do contexto.
func (c Context) Owns(organizationID string) bool {
	return c.OrganizationID != "" && c.OrganizationID == organizationID
}
