package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken token malformado, com assinatura incorreta ou expirado.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims inclui os claims padrão mais o contexto de tenant da sessão.
// ActiveCompanyID muda quando o vendedor seleciona outra empresa (token reemitido).
type Claims struct {
	jwt.RegisteredClaims
	OrganizationID  string `json:"org,omitempty"`
	Role            string `json:"role"` // super_admin | gestor | vendedor
	ActiveCompanyID string `json:"emp_ativa,omitempty"`
}

// UserID devolve o subject do token.
func (c *Claims) UserID() string { return c.Subject }

// Payload dados de sessão a assinar.
type Payload struct {
	UserID          string
	OrganizationID  string
	Role            string
	ActiveCompanyID string
}

// Generate gera um token HS256 assinado com o payload e validade de expMinutes.
func Generate(secret, issuer string, expMinutes int, p Payload) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		OrganizationID:  p.OrganizationID,
		Role:            p.Role,
		ActiveCompanyID: p.ActiveCompanyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: assinar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida assinatura e expiração e devolve os claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
