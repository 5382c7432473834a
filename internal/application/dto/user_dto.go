package dto

// CreateSellerRequest entrada para cadastrar um vendedor.
type CreateSellerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// UpdateSellerRequest alteração parcial de vendedor. Password redefine a senha.
type UpdateSellerRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// LinkCompanyRequest vínculo vendedor↔empresa.
type LinkCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// SellerResponse vendedor com as empresas vinculadas.
type SellerResponse struct {
	UserResponse
	Companies []CompanySummary `json:"companies"`
}
