package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/catalog"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// ProductHandler categorias, produtos, variações e histórico de preço.
type ProductHandler struct {
	uc *catalog.CatalogUseCase
}

func NewProductHandler(uc *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorias
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        active  query  bool  false  "Somente ativas"
// @Success      200     {array}  dto.CategoryResponse
// @Router       /api/gestor/categories [get]
// @Router       /api/vendedor/categories [get]
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	onlyActive := c.QueryBool("active", false) || GetRole(c) == entity.RoleVendedor
	out, err := h.uc.ListCategories(c.UserContext(), Tenant(c), onlyActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Criar categoria
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CategoryRequest  true  "Categoria"
// @Success      201   {object}  dto.CategoryResponse
// @Router       /api/gestor/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateCategory(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UpdateCategory godoc
// @Summary      Atualizar categoria
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID da categoria"
// @Param        body  body  dto.CategoryRequest  true  "Categoria"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/gestor/categories/{id} [put]
func (h *ProductHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateCategory(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Excluir categoria
// @Tags         produtos
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da categoria"
// @Success      204
// @Router       /api/gestor/categories/{id} [delete]
func (h *ProductHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// List godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        company_id   query  string  false  "Empresa"
// @Param        category_id  query  string  false  "Categoria"
// @Param        search       query  string  false  "Código ou descrição"
// @Param        skip         query  int     false  "Deslocamento"
// @Param        limit        query  int     false  "Limite"
// @Success      200          {array}  dto.ProductResponse
// @Router       /api/gestor/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListProducts(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter produto com variações
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/gestor/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateProductRequest  true  "Produto e variações"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Atualizar produto
// @Description  Mudança de preço base grava uma linha no histórico de preços.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID do produto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/gestor/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Histórico de preços do produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {array}  dto.PriceHistoryResponse
// @Router       /api/gestor/products/{id}/price-history [get]
func (h *ProductHandler) PriceHistory(c *fiber.Ctx) error {
	out, err := h.uc.PriceHistory(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddVariant godoc
// @Summary      Adicionar variação
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID do produto"
// @Param        body  body  dto.VariantRequest  true  "Variação"
// @Success      201   {object}  dto.VariantResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddVariant(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UpdateVariant godoc
// @Summary      Atualizar variação
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string              true  "ID do produto"
// @Param        variant_id  path  string              true  "ID da variação"
// @Param        body        body  dto.VariantRequest  true  "Variação"
// @Success      200         {object}  dto.VariantResponse
// @Router       /api/gestor/products/{id}/variants/{variant_id} [put]
func (h *ProductHandler) UpdateVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateVariant(c.UserContext(), Tenant(c), c.Params("id"), c.Params("variant_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteVariant godoc
// @Summary      Remover variação
// @Tags         produtos
// @Security     BearerAuth
// @Param        id          path  string  true  "ID do produto"
// @Param        variant_id  path  string  true  "ID da variação"
// @Success      204
// @Router       /api/gestor/products/{id}/variants/{variant_id} [delete]
func (h *ProductHandler) DeleteVariant(c *fiber.Ctx) error {
	if err := h.uc.DeleteVariant(c.UserContext(), Tenant(c), c.Params("id"), c.Params("variant_id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
