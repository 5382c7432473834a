package entity

import "time"

// Status de assinatura de uma Organization.
const (
	SubscriptionActive    = "ativo"
	SubscriptionSuspended = "suspenso"
	SubscriptionCancelled = "cancelado"
)

// Organization raiz do tenant: todo dado de negócio pertence a exatamente uma.
type Organization struct {
	ID                 string
	Name               string
	TaxID              string // CNPJ (somente dígitos), único no sistema
	ContactEmail       string
	ContactPhone       string
	SubscriptionStatus string // ativo, suspenso, cancelado
	Plan               string
	UserLimit          int
	CompanyLimit       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive indica se a assinatura permite operar.
func (o *Organization) IsActive() bool {
	return o != nil && o.SubscriptionStatus == SubscriptionActive
}
