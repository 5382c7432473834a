package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validação", domain.NewValidationError("email", "e-mail inválido"), 422, "VALIDATION"},
		{"não encontrado com entidade", domain.NotFound("pedido"), 404, "NOT_FOUND"},
		{"não encontrado embrulhado", fmt.Errorf("buscar: %w", domain.ErrNotFound), 404, "NOT_FOUND"},
		{"sem empresa ativa", domain.ErrNoActiveCompany, 400, "NO_ACTIVE_COMPANY"},
		{"entrada inválida", errMalformedBody, 400, "INVALID_INPUT"},
		{"não autenticado", domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"usuário inexistente", domain.ErrUserNotFound, 404, "NOT_FOUND"},
		{"proibido", domain.ErrForbidden, 403, "FORBIDDEN"},
		{"referência inválida", domain.ErrInvalidReference, 404, "INVALID_REFERENCE"},
		{"transição", domain.ErrInvalidTransition, 409, "INVALID_TRANSITION"},
		{"duplicado", domain.ErrDuplicate, 409, "DUPLICATE"},
		{"versão", domain.ErrConflict, 409, "CONFLICT"},
		{"timeout", domain.ErrTimeout, 408, "TIMEOUT"},
		{"indisponível", domain.ErrUnavailable, 503, "UNAVAILABLE"},
		{"fiber", fiber.NewError(fiber.StatusTooManyRequests, "calma"), 429, "HTTP_429"},
		{"desconhecido", errors.New("pool fechado"), 500, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestClassify_InternoNaoVazaDetalhe(t *testing.T) {
	_, body := classify(errors.New("senha do banco: hunter2"))
	assert.NotContains(t, body.Message, "hunter2")
}

func TestParseBody(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/login", func(c *fiber.Ctx) error {
		var in dto.LoginRequest
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
		return c.JSON(in)
	})

	post := func(body string) (int, dto.ErrorResponse) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	status, out := post(`{"email": `)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", out.Code)

	status, out = post(`{"email": "nao-e-email", "password": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Message, "email")

	status, _ = post(`{"email": "ana@repcom.com.br", "password": "segredo"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestParseQuery_PaginacaoPadrao(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/items", func(c *fiber.Ctx) error {
		var in dto.PageRequest
		if err := parseQuery(c, &in); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"limit": in.Limit, "skip": in.Offset})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items?skip=20&limit=10", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 10, out["limit"])
	assert.Equal(t, 20, out["skip"])
}
