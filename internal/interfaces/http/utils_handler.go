package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// UtilsHandler consultas de CNPJ e CEP.
type UtilsHandler struct {
	uc *usecase.LookupUseCase
}

func NewUtilsHandler(uc *usecase.LookupUseCase) *UtilsHandler {
	return &UtilsHandler{uc: uc}
}

// CNPJ godoc
// @Summary      Consultar CNPJ
// @Tags         utils
// @Produce      json
// @Security     BearerAuth
// @Param        cnpj  path  string  true  "CNPJ (com ou sem máscara)"
// @Success      200   {object}  ports.CompanyRecord
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/utils/cnpj/{cnpj} [get]
func (h *UtilsHandler) CNPJ(c *fiber.Ctx) error {
	out, err := h.uc.Company(c.UserContext(), c.Params("cnpj"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CEP godoc
// @Summary      Consultar CEP
// @Tags         utils
// @Produce      json
// @Security     BearerAuth
// @Param        cep  path  string  true  "CEP (com ou sem máscara)"
// @Success      200  {object}  ports.AddressRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Router       /api/utils/cep/{cep} [get]
func (h *UtilsHandler) CEP(c *fiber.Ctx) error {
	out, err := h.uc.Address(c.UserContext(), c.Params("cep"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
