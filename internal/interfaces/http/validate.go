package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nome do campo no erro segue a tag json/query do DTO.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica o JSON do corpo e valida as tags do DTO.
// Corpo malformado é 400; regra de validação violada é 422.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errMalformedBody
	}
	return validateStruct(out)
}

// parseQuery lê a query string para o DTO e valida as tags.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("query", "parâmetros inválidos")
	}
	return validateStruct(out)
}

var errMalformedBody = fmt.Errorf("%w: corpo da requisição inválido", domain.ErrInvalidInput)

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidationError(fieldPath(fe), ruleMessage(fe))
}

// fieldPath remove o nome do struct raiz ("CreateOrderRequest.items[0].quantity" -> "items[0].quantity").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return "valor abaixo do mínimo (" + fe.Param() + ")"
	case "max":
		return "valor acima do máximo (" + fe.Param() + ")"
	case "len":
		return "deve ter tamanho " + fe.Param()
	case "oneof":
		return "deve ser um de: " + fe.Param()
	case "gte", "lte", "gt", "lt":
		return "fora do intervalo permitido (" + fe.Tag() + " " + fe.Param() + ")"
	}
	return "valor inválido (" + fe.Tag() + ")"
}
