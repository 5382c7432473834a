package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/catalog"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler importação de produtos por planilha.
type ImportHandler struct {
	uc *catalog.ImportUseCase
}

func NewImportHandler(uc *catalog.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Preview godoc
// @Summary      Pré-visualizar planilha
// @Description  Devolve as primeiras linhas para o usuário montar o mapeamento de colunas.
// @Tags         importacao
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Planilha .xlsx ou .csv"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Router       /api/gestor/import/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, domain.NewValidationError("file", "arquivo obrigatório"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Preview(c.UserContext(), Tenant(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar produtos para um catálogo
// @Description  Erros por linha são coletados; uma linha ruim não aborta o lote.
// @Tags         importacao
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true  "Planilha .xlsx ou .csv"
// @Param        catalog_id  formData  string  true  "Catálogo de destino"
// @Param        mapping     formData  string  true  "JSON {codigo, descricao, tamanhos, cores, preco}"
// @Success      200         {object}  dto.ImportResponse
// @Router       /api/gestor/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	catalogID := c.FormValue("catalog_id")
	if catalogID == "" {
		return respondError(c, domain.NewValidationError("catalog_id", "campo obrigatório"))
	}
	var mapping dto.ImportMapping
	if err := json.Unmarshal([]byte(c.FormValue("mapping")), &mapping); err != nil {
		return respondError(c, domain.NewValidationError("mapping", "JSON de mapeamento inválido"))
	}
	if err := validateStruct(&mapping); err != nil {
		return respondError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, domain.NewValidationError("file", "arquivo obrigatório"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), Tenant(c), catalogID, mapping, fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Template godoc
// @Summary      Baixar planilha modelo
// @Tags         importacao
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/gestor/import/template [get]
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	data, err := h.uc.Template()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="modelo_importacao.xlsx"`)
	return c.Send(data)
}
