package entity

import "time"

// PaymentMethod forma de pagamento. OrganizationID nil = global (somente leitura para gestores).
type PaymentMethod struct {
	ID                 string
	OrganizationID     *string
	Name               string
	AllowsInstallments bool
	MaxInstallments    int
	IsActive           bool
	CreatedAt          time.Time
}

// IsGlobal indica se a forma de pagamento é do sistema e não de uma organização.
func (p *PaymentMethod) IsGlobal() bool {
	return p.OrganizationID == nil
}
