package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/security"
	apphttp "github.com/weslleycarlos/representacao-comercial/internal/interfaces/http"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOrgID     = "00000000-0000-0000-0000-000000000002"
	testCompanyID = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "repcom-test"
	testExpMin    = 60
)

var testCodec = security.NewJWTCodec(testJWTSecret, testIssuer, testExpMin)

// fakeSessions simula o AuthUseCase.ResolveSession.
type fakeSessions struct {
	err error
	org *entity.Organization
}

func (f fakeSessions) ResolveSession(_ context.Context, tc tenant.Context) (*entity.User, *entity.Organization, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	org := f.org
	if org == nil {
		org = &entity.Organization{ID: tc.OrganizationID, SubscriptionStatus: entity.SubscriptionActive}
	}
	return &entity.User{ID: tc.UserID, Role: tc.Role, IsActive: true}, org, nil
}

// buildTestApp monta uma app Fiber mínima com AuthMiddleware e RequireRole.
func buildTestApp(sessions apphttp.SessionResolver, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testCodec, sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	app.Get("/seller",
		apphttp.AuthMiddleware(testCodec, sessions),
		apphttp.RequireActiveCompany(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"company_id": apphttp.Tenant(c).ActiveCompanyID})
		},
	)
	return app
}

func tokenFor(t *testing.T, role, companyID string) string {
	t.Helper()
	tok, _, err := testCodec.Issue(tenant.Context{
		UserID:          testUserID,
		OrganizationID:  testOrgID,
		Role:            role,
		ActiveCompanyID: companyID,
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_GestorAcessaRotaGestor(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleGestor, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleGestor, body["role"])
}

func TestRequireRole_MultiplosPerfis(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor, entity.RoleSuperAdmin)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleSuperAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEmRotaGestor(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleVendedor, testCompanyID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestAuthMiddleware_SemHeader_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_EsquemaErrado_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	tok := tokenFor(t, entity.RoleGestor, "")
	resp := doRequest(t, app, "/protected", "Basic "+tok[len("Bearer "):])
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenDeOutroSegredo_Retorna401(t *testing.T) {
	other := security.NewJWTCodec("outro-segredo", testIssuer, testExpMin)
	tok, _, err := other.Issue(tenant.Context{UserID: testUserID, OrganizationID: testOrgID, Role: entity.RoleGestor})
	require.NoError(t, err)

	app := buildTestApp(fakeSessions{}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioRemovidoOuInativo_Retorna404(t *testing.T) {
	for _, err := range []error{domain.NotFound("usuário"), domain.ErrUserNotFound} {
		app := buildTestApp(fakeSessions{err: err}, entity.RoleGestor)
		resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleGestor, ""))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode, err.Error())
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "NOT_FOUND")
	}
}

func TestAuthMiddleware_PerfilDivergente_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{err: domain.ErrUnauthorized}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleGestor, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_OrganizacaoSuspensa_Retorna403(t *testing.T) {
	org := &entity.Organization{ID: testOrgID, SubscriptionStatus: entity.SubscriptionSuspended}
	app := buildTestApp(fakeSessions{org: org}, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleGestor, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_SemResolverAceitaToken(t *testing.T) {
	app := buildTestApp(nil, entity.RoleGestor)
	resp := doRequest(t, app, "/protected", tokenFor(t, entity.RoleGestor, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveCompany(t *testing.T) {
	app := buildTestApp(fakeSessions{})

	t.Run("sem empresa ativa", func(t *testing.T) {
		resp := doRequest(t, app, "/seller", tokenFor(t, entity.RoleVendedor, ""))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "NO_ACTIVE_COMPANY")
	})

	t.Run("com empresa ativa", func(t *testing.T) {
		resp := doRequest(t, app, "/seller", tokenFor(t, entity.RoleVendedor, testCompanyID))
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testCompanyID, body["company_id"])
	})
}
