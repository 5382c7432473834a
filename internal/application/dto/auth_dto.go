package dto

import "time"

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SelectCompanyRequest empresa ativa escolhida pelo vendedor.
type SelectCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// ForgotPasswordRequest pedido de recuperação de senha.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redefinição de senha com o token recebido por e-mail.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ChangePasswordRequest troca de senha do usuário autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// UserResponse dados públicos de um usuário.
type UserResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone,omitempty"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	LastAccessAt   *time.Time `json:"last_access_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CompanySummary empresa resumida (seleção de empresa, vínculos).
type CompanySummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"`
	Active bool   `json:"is_active"`
}

// SessionResponse resposta de login, seleção de empresa e /me.
type SessionResponse struct {
	Token         string                `json:"access_token,omitempty"`
	TokenType     string                `json:"token_type,omitempty"`
	ExpiresAt     *time.Time            `json:"expires_at,omitempty"`
	User          UserResponse          `json:"user"`
	Organization  *OrganizationResponse `json:"organization,omitempty"`
	ActiveCompany *CompanySummary       `json:"active_company,omitempty"`
	Companies     []CompanySummary      `json:"companies"`
}
