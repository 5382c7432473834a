package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/catalog"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
)

// CatalogHandler catálogos de preço por empresa e seus itens.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogos
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  query  string  false  "Empresa"
// @Success      200         {array}  dto.CatalogResponse
// @Router       /api/gestor/catalogs [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListCatalogs(c.UserContext(), Tenant(c), c.Query("company_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter catálogo
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do catálogo"
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/gestor/catalogs/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetCatalog(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar catálogo
// @Description  Um catálogo ativo desativa os demais da mesma empresa.
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCatalogRequest  true  "Catálogo"
// @Success      201   {object}  dto.CatalogResponse
// @Router       /api/gestor/catalogs [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateCatalog(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Atualizar catálogo
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID do catálogo"
// @Param        body  body  dto.UpdateCatalogRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.CatalogResponse
// @Router       /api/gestor/catalogs/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateCatalog(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir catálogo
// @Tags         catalogos
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do catálogo"
// @Success      204
// @Router       /api/gestor/catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCatalog(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListItems godoc
// @Summary      Itens do catálogo
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do catálogo"
// @Success      200  {array}  dto.CatalogItemResponse
// @Router       /api/gestor/catalogs/{id}/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar produto ao catálogo
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID do catálogo"
// @Param        body  body  dto.AddCatalogItemRequest  true  "Produto e preço"
// @Success      201   {object}  dto.CatalogItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/catalogs/{id}/items [post]
func (h *CatalogHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCatalogItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddItem(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UpdateItem godoc
// @Summary      Atualizar preço ou status do item
// @Description  Exige a versão lida; corrida perdida devolve 409.
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                        true  "ID do catálogo"
// @Param        item_id  path  string                        true  "ID do item"
// @Param        body     body  dto.UpdateCatalogItemRequest  true  "Preço, ativo e versão"
// @Success      200      {object}  dto.CatalogItemResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/gestor/catalogs/{id}/items/{item_id} [put]
func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCatalogItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), Tenant(c), c.Params("id"), c.Params("item_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remover item do catálogo
// @Tags         catalogos
// @Security     BearerAuth
// @Param        id       path  string  true  "ID do catálogo"
// @Param        item_id  path  string  true  "ID do item"
// @Success      204
// @Router       /api/gestor/catalogs/{id}/items/{item_id} [delete]
func (h *CatalogHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.UserContext(), Tenant(c), c.Params("id"), c.Params("item_id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// SellerCatalog godoc
// @Summary      Catálogo ativo da empresa selecionada
// @Description  Apenas produtos e variações ativos, com o preço efetivo.
// @Tags         vendedor
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query  string  false  "Filtrar por categoria"
// @Success      200          {object}  dto.SellerCatalogResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/vendedor/catalog [get]
func (h *CatalogHandler) SellerCatalog(c *fiber.Ctx) error {
	out, err := h.uc.SellerCatalog(c.UserContext(), Tenant(c), c.Query("category_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
