package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/sales"
)

// OrderHandler pedidos: rotas do vendedor (próprios pedidos) e do gestor (organização).
type OrderHandler struct {
	uc *sales.OrderUseCase
}

func NewOrderHandler(uc *sales.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Criar pedido
// @Description  Preços, descontos, comissão e histórico são gravados numa única transação.
// @Tags         vendedor-pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/vendedor/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListOwn godoc
// @Summary      Meus pedidos na empresa ativa
// @Tags         vendedor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query  int  false  "Deslocamento"
// @Param        limit  query  int  false  "Limite"
// @Success      200    {object}  dto.OrderListResponse
// @Router       /api/vendedor/orders [get]
func (h *OrderHandler) ListOwn(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListOwn(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOwn godoc
// @Summary      Obter pedido próprio
// @Tags         vendedor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendedor/orders/{id} [get]
func (h *OrderHandler) GetOwn(c *fiber.Ctx) error {
	out, err := h.uc.GetOwn(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePending godoc
// @Summary      Alterar desconto e observações de pedido pendente
// @Tags         vendedor-pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID do pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Desconto, observações e versão"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendedor/orders/{id} [put]
func (h *OrderHandler) UpdatePending(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdatePending(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido próprio
// @Tags         vendedor-pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID do pedido"
// @Param        body  body  dto.CancelOrderRequest  true  "Motivo e versão"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendedor/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResendConfirmation godoc
// @Summary      Reenviar e-mail de confirmação
// @Tags         vendedor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pedido"
// @Success      202  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/vendedor/orders/{id}/resend-email [post]
func (h *OrderHandler) ResendConfirmation(c *fiber.Ctx) error {
	if err := h.uc.ResendConfirmation(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: "E-mail de confirmação enfileirado."})
}

// PDF godoc
// @Summary      PDF do pedido
// @Tags         vendedor-pedidos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {file}  binary
// @Router       /api/vendedor/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.PDF(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// List godoc
// @Summary      Pedidos da organização
// @Tags         gestor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        seller_id    query  string  false  "Vendedor"
// @Param        company_id   query  string  false  "Empresa"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        status       query  string  false  "Status"
// @Param        from         query  string  false  "AAAA-MM-DD"
// @Param        to           query  string  false  "AAAA-MM-DD"
// @Param        skip         query  int     false  "Deslocamento"
// @Param        limit        query  int     false  "Limite (máx. 500)"
// @Success      200          {object}  dto.OrderListResponse
// @Router       /api/gestor/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter pedido da organização
// @Tags         gestor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/gestor/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Mudar status do pedido
// @Tags         gestor-pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID do pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Novo status, observação e versão"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico de status do pedido
// @Tags         gestor-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {array}  dto.OrderStatusHistoryResponse
// @Router       /api/gestor/orders/{id}/history [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
