// Package security adapta bcrypt e JWT às portas PasswordHasher e TokenCodec.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
)

// BcryptHasher implementa ports.PasswordHasher com bcrypt.
type BcryptHasher struct {
	cost int
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher cost <= 0 usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash gera o hash bcrypt da senha.
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare devolve erro se password não corresponder ao hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
