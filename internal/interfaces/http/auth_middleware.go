package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// localTenant chave em c.Locals do tenant.Context da requisição.
const localTenant = "tenant"

// SessionResolver confere se o usuário do token continua ativo e com o mesmo perfil.
// Implementado por *auth.AuthUseCase.
type SessionResolver interface {
	ResolveSession(ctx context.Context, tc tenant.Context) (*entity.User, *entity.Organization, error)
}

// AuthMiddleware valida o Bearer token e grava o tenant.Context em c.Locals.
// Com sessions != nil, usuário removido ou desativado recebe 404 e organização
// suspensa recebe 403, mesmo com token ainda válido.
func AuthMiddleware(tokens ports.TokenCodec, sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return respondError(c, domain.ErrUnauthorized)
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return respondError(c, domain.ErrUnauthorized)
		}
		tc, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return respondError(c, domain.ErrUnauthorized)
		}
		tc.ClientIP = c.IP()

		if sessions != nil {
			_, org, err := sessions.ResolveSession(c.UserContext(), tc)
			if err != nil {
				return respondError(c, err)
			}
			if org != nil && org.SubscriptionStatus != entity.SubscriptionActive {
				return respondError(c, domain.ErrForbidden)
			}
		}

		c.Locals(localTenant, tc)
		return c.Next()
	}
}

// RequireRole bloqueia com 403 perfis fora de roles. Usar depois de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := Tenant(c).RequireRole(roles...); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// RequireActiveCompany exige empresa ativa no token (rotas do vendedor).
func RequireActiveCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := Tenant(c).Seller(); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// Tenant devolve o contexto de sessão gravado pelo AuthMiddleware.
func Tenant(c *fiber.Ctx) tenant.Context {
	tc, _ := c.Locals(localTenant).(tenant.Context)
	return tc
}

// GetRole devolve o perfil do usuário autenticado.
func GetRole(c *fiber.Ctx) string { return Tenant(c).Role }
