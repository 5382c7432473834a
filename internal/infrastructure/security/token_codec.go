package security

import (
	"fmt"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
	"github.com/weslleycarlos/representacao-comercial/pkg/jwt"
)

// JWTCodec implementa ports.TokenCodec sobre pkg/jwt (HS256).
type JWTCodec struct {
	secret     string
	issuer     string
	expMinutes int
}

var _ ports.TokenCodec = (*JWTCodec)(nil)

// NewJWTCodec constrói o codec com segredo, emissor e validade em minutos.
func NewJWTCodec(secret, issuer string, expMinutes int) *JWTCodec {
	return &JWTCodec{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Issue assina um token com o contexto de tenant.
func (c *JWTCodec) Issue(tc tenant.Context) (string, time.Time, error) {
	return jwt.Generate(c.secret, c.issuer, c.expMinutes, jwt.Payload{
		UserID:          tc.UserID,
		OrganizationID:  tc.OrganizationID,
		Role:            tc.Role,
		ActiveCompanyID: tc.ActiveCompanyID,
	})
}

// Parse valida o token e devolve o contexto. Qualquer falha vira domain.ErrUnauthorized.
func (c *JWTCodec) Parse(token string) (tenant.Context, error) {
	claims, err := jwt.Parse(c.secret, token)
	if err != nil {
		return tenant.Context{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Role == "" {
		return tenant.Context{}, fmt.Errorf("%w: token sem perfil", domain.ErrUnauthorized)
	}
	return tenant.Context{
		UserID:          claims.UserID(),
		OrganizationID:  claims.OrganizationID,
		Role:            claims.Role,
		ActiveCompanyID: claims.ActiveCompanyID,
	}, nil
}
