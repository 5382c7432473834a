package dto

// PaymentMethodRequest criação/alteração de forma de pagamento da organização.
type PaymentMethodRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	AllowsInstallments bool   `json:"allows_installments"`
	MaxInstallments    int    `json:"max_installments" validate:"min=0,max=48"`
	IsActive           *bool  `json:"is_active"`
}

// PaymentMethodResponse saída de forma de pagamento.
type PaymentMethodResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Global             bool   `json:"global"`
	AllowsInstallments bool   `json:"allows_installments"`
	MaxInstallments    int    `json:"max_installments"`
	IsActive           bool   `json:"is_active"`
}
