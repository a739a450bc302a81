package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/dbmetrics"
	"github.com/m04kA/yakidesk/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"avatar_url",
	"status",
	"roles",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает профиль или сливает поля с существующим.
// При конфликте обновляются только имя, email и аватар: статус и роли
// существующего профиля не перезаписываются.
func (r *Repository) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "name", "email", "avatar_url", "status", "roles").
		Values(profile.ID, profile.Name, profile.Email, profile.AvatarURL, profile.Status, pq.Array(rolesToStrings(profile.Roles))).
		Suffix(
			"ON CONFLICT (id) DO UPDATE SET " +
				"name = EXCLUDED.name, email = EXCLUDED.email, " +
				"avatar_url = COALESCE(EXCLUDED.avatar_url, users.avatar_url), updated_at = NOW() " +
				"RETURNING id, name, email, avatar_url, status, roles, created_at, updated_at",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	stored, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return stored, nil
}

// GetByID получает профиль по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	profile, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}

	return profile, nil
}

// ListByStatus возвращает профили с заданным статусом, старые первыми
func (r *Repository) ListByStatus(ctx context.Context, status domain.UserStatus) ([]*domain.UserProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.UserProfile, 0)
	for rows.Next() {
		profile, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStatus - scan row: %v", ErrScanRow, err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - rows error: %v", ErrScanRow, err)
	}

	return profiles, nil
}

// UpdateStatus обновляет статус профиля
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// SetRoles заменяет набор ролей профиля
func (r *Repository) SetRoles(ctx context.Context, id string, roles []domain.Role) error {
	return r.update(ctx, "SetRoles", id, map[string]interface{}{"roles": pq.Array(rolesToStrings(roles))})
}

// CountByRole считает профили с заданной ролью
func (r *Repository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("users").
		Where(squirrel.Expr("? = ANY(roles)", string(role))).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByRole - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByRole - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) update(ctx context.Context, op, id string, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	var avatarURL sql.NullString
	var roles []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&avatarURL,
		&profile.Status,
		pq.Array(&roles),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatarURL.Valid {
		profile.AvatarURL = &avatarURL.String
	}
	profile.Roles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		profile.Roles = append(profile.Roles, domain.Role(role))
	}
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}
