package repository

import (
	"context"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// UserRepository define a porta de persistência para User e o vínculo vendedor↔empresa.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastAccess(ctx context.Context, id string, at time.Time) error
	ListByOrganization(ctx context.Context, organizationID, role string) ([]*entity.User, error)

	LinkCompany(ctx context.Context, link *entity.UserCompany) error
	UnlinkCompany(ctx context.Context, userID, companyID string) (bool, error)
	IsLinked(ctx context.Context, userID, companyID string) (bool, error)
	ListLinkedCompanyIDs(ctx context.Context, userID string) ([]string, error)
}

// PasswordResetRepository tokens de recuperação de senha.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	Get(ctx context.Context, token string) (*entity.PasswordReset, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
