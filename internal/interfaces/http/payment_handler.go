package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// PaymentHandler formas de pagamento globais e da organização.
type PaymentHandler struct {
	uc *usecase.PaymentMethodUseCase
}

func NewPaymentHandler(uc *usecase.PaymentMethodUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar formas de pagamento
// @Description  Vendedor recebe apenas as ativas.
// @Tags         pagamentos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PaymentMethodResponse
// @Router       /api/gestor/payment-methods [get]
// @Router       /api/vendedor/payment-methods [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), Tenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar forma de pagamento da organização
// @Tags         pagamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PaymentMethodRequest  true  "Forma de pagamento"
// @Success      201   {object}  dto.PaymentMethodResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/payment-methods [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentMethodRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Atualizar forma de pagamento
// @Description  Formas globais não podem ser alteradas (403).
// @Tags         pagamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID da forma de pagamento"
// @Param        body  body  dto.PaymentMethodRequest  true  "Forma de pagamento"
// @Success      200   {object}  dto.PaymentMethodResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/gestor/payment-methods/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.PaymentMethodRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desativar forma de pagamento
// @Tags         pagamentos
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da forma de pagamento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/gestor/payment-methods/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
