package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// CustomerHandler clientes da organização. As mesmas rotas servem gestor e
// vendedor; o caso de uso restringe o que cada perfil pode alterar.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Razão social, fantasia ou CNPJ"
// @Param        skip    query  int     false  "Deslocamento"
// @Param        limit   query  int     false  "Limite"
// @Success      200     {array}  dto.CustomerResponse
// @Router       /api/gestor/customers [get]
// @Router       /api/vendedor/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var in dto.CustomerListRequest
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
// @Summary      Obter cliente com endereços e contatos
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Router       /api/gestor/customers/{id} [get]
// @Router       /api/vendedor/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/customers [post]
// @Router       /api/vendedor/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
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
// @Summary      Atualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID do cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.CustomerResponse
// @Router       /api/gestor/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
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
// @Summary      Desativar cliente
// @Tags         clientes
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do cliente"
// @Success      204
// @Router       /api/gestor/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// AddAddress godoc
// @Summary      Adicionar endereço
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID do cliente"
// @Param        body  body  dto.AddressRequest  true  "Endereço"
// @Success      201   {object}  dto.AddressResponse
// @Router       /api/gestor/customers/{id}/addresses [post]
// @Router       /api/vendedor/customers/{id}/addresses [post]
func (h *CustomerHandler) AddAddress(c *fiber.Ctx) error {
	var in dto.AddressRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddAddress(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UpdateAddress godoc
// @Summary      Atualizar endereço
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string              true  "ID do cliente"
// @Param        address_id  path  string              true  "ID do endereço"
// @Param        body        body  dto.AddressRequest  true  "Endereço"
// @Success      200         {object}  dto.AddressResponse
// @Router       /api/gestor/customers/{id}/addresses/{address_id} [put]
// @Router       /api/vendedor/customers/{id}/addresses/{address_id} [put]
func (h *CustomerHandler) UpdateAddress(c *fiber.Ctx) error {
	var in dto.AddressRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateAddress(c.UserContext(), Tenant(c), c.Params("id"), c.Params("address_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAddress godoc
// @Summary      Remover endereço
// @Tags         clientes
// @Security     BearerAuth
// @Param        id          path  string  true  "ID do cliente"
// @Param        address_id  path  string  true  "ID do endereço"
// @Success      204
// @Router       /api/gestor/customers/{id}/addresses/{address_id} [delete]
// @Router       /api/vendedor/customers/{id}/addresses/{address_id} [delete]
func (h *CustomerHandler) DeleteAddress(c *fiber.Ctx) error {
	if err := h.uc.DeleteAddress(c.UserContext(), Tenant(c), c.Params("id"), c.Params("address_id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// AddContact godoc
// @Summary      Adicionar contato
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID do cliente"
// @Param        body  body  dto.ContactRequest  true  "Contato"
// @Success      201   {object}  dto.ContactResponse
// @Router       /api/gestor/customers/{id}/contacts [post]
func (h *CustomerHandler) AddContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddContact(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UpdateContact godoc
// @Summary      Atualizar contato
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string              true  "ID do cliente"
// @Param        contact_id  path  string              true  "ID do contato"
// @Param        body        body  dto.ContactRequest  true  "Contato"
// @Success      200         {object}  dto.ContactResponse
// @Router       /api/gestor/customers/{id}/contacts/{contact_id} [put]
func (h *CustomerHandler) UpdateContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateContact(c.UserContext(), Tenant(c), c.Params("id"), c.Params("contact_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteContact godoc
// @Summary      Remover contato
// @Tags         clientes
// @Security     BearerAuth
// @Param        id          path  string  true  "ID do cliente"
// @Param        contact_id  path  string  true  "ID do contato"
// @Success      204
// @Router       /api/gestor/customers/{id}/contacts/{contact_id} [delete]
func (h *CustomerHandler) DeleteContact(c *fiber.Ctx) error {
	if err := h.uc.DeleteContact(c.UserContext(), Tenant(c), c.Params("id"), c.Params("contact_id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
