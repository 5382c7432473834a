package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var (
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)
)

// UserRepo implementação de UserRepository (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, organization_id, email, password_hash, full_name, phone, role, is_active,
	last_access_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	var orgID *string
	err := row.Scan(&u.ID, &orgID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.IsActive,
		&u.LastAccessAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if orgID != nil {
		u.OrganizationID = *orgID
	}
	return &u, nil
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Create persiste um usuário. E-mail repetido: ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, nullString(u.OrganizationID), u.Email, u.PasswordHash, u.FullName, u.Phone, u.Role, u.IsActive,
		u.LastAccessAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail busca por e-mail (sem diferenciar maiúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "find user by email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// Update atualiza dados cadastrais e status (não altera senha).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, full_name = $3, phone = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, u.ID, u.Email, u.FullName, u.Phone, u.IsActive, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword grava um novo hash de senha.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateLastAccess registra o último login.
func (r *UserRepo) UpdateLastAccess(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_access_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last access: %w", err)
	}
	return nil
}

// ListByOrganization lista usuários da organização; role vazio = todos os perfis.
func (r *UserRepo) ListByOrganization(ctx context.Context, organizationID, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE organization_id = $1 AND ($2 = '' OR role = $2) ORDER BY full_name`
	rows, err := r.q.Query(ctx, query, organizationID, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// LinkCompany cria o vínculo vendedor↔empresa. Vínculo existente: ErrDuplicate.
func (r *UserRepo) LinkCompany(ctx context.Context, link *entity.UserCompany) error {
	_, err := r.q.Exec(ctx, `INSERT INTO user_companies (user_id, company_id, linked_at) VALUES ($1, $2, $3)`,
		link.UserID, link.CompanyID, link.LinkedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("link company: %w", err)
	}
	return nil
}

// UnlinkCompany remove o vínculo; false se não existia.
func (r *UserRepo) UnlinkCompany(ctx context.Context, userID, companyID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_companies WHERE user_id = $1 AND company_id = $2`, userID, companyID)
	if err != nil {
		return false, fmt.Errorf("unlink company: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsLinked indica se o usuário está vinculado à empresa.
func (r *UserRepo) IsLinked(ctx context.Context, userID, companyID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_companies WHERE user_id = $1 AND company_id = $2)`,
		userID, companyID).Scan(&ok)
	if err != nil {
		if noRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check link: %w", err)
	}
	return ok, nil
}

// ListLinkedCompanyIDs IDs das empresas vinculadas ao usuário.
func (r *UserRepo) ListLinkedCompanyIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT company_id FROM user_companies WHERE user_id = $1 ORDER BY linked_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list linked company ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PasswordResetRepo tokens de recuperação de senha.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository constrói o adaptador.
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

// Create grava um token.
func (r *PasswordResetRepo) Create(ctx context.Context, p *entity.PasswordReset) error {
	_, err := r.q.Exec(ctx, `INSERT INTO password_resets (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		p.Token, p.UserID, p.ExpiresAt, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

// Get obtém o token (expirado ou não).
func (r *PasswordResetRepo) Get(ctx context.Context, token string) (*entity.PasswordReset, error) {
	var p entity.PasswordReset
	err := r.q.QueryRow(ctx, `SELECT token, user_id, expires_at, created_at FROM password_resets WHERE token = $1`, token).
		Scan(&p.Token, &p.UserID, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &p, nil
}

// Delete remove o token após o uso.
func (r *PasswordResetRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM password_resets WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete password reset: %w", err)
	}
	return nil
}

// DeleteByUser remove todos os tokens do usuário.
func (r *PasswordResetRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM password_resets WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete password resets: %w", err)
	}
	return nil
}
