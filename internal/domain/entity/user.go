package entity

import "time"

// Perfis válidos para User.
const (
	RoleSuperAdmin = "super_admin"
	RoleGestor     = "gestor"
	RoleVendedor   = "vendedor"
)

// User usuário do sistema. OrganizationID é vazio apenas para super_admin.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca texto plano após persistir
	FullName       string
	Phone          string
	Role           string // super_admin, gestor, vendedor
	IsActive       bool
	LastAccessAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserCompany vínculo "este vendedor pode vender em nome desta empresa".
type UserCompany struct {
	UserID    string
	CompanyID string
	LinkedAt  time.Time
}

// PasswordReset token de recuperação de senha (uso único, expira).
type PasswordReset struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired indica se o token já venceu no instante now.
func (p *PasswordReset) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
