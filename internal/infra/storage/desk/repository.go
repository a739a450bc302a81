package desk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/dbmetrics"
	"github.com/m04kA/yakidesk/pkg/psqlbuilder"
)

// Repository справочник столов (только чтение, наполняется миграцией)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все столы в порядке идентификаторов
func (r *Repository) List(ctx context.Context) ([]*domain.Desk, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "label", "location", "type").
		From("desks").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	desks := make([]*domain.Desk, 0)
	for rows.Next() {
		desk, err := scanDesk(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		desks = append(desks, desk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return desks, nil
}

// GetByID получает стол по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Desk, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "label", "location", "type").
		From("desks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	desk, err := scanDesk(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan desk: %w", ErrScanRow, err)
	}

	return desk, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDesk(row scanner) (*domain.Desk, error) {
	var desk domain.Desk
	var location, deskType sql.NullString

	if err := row.Scan(&desk.ID, &desk.Label, &location, &deskType); err != nil {
		return nil, err
	}

	if location.Valid {
		desk.Location = &location.String
	}
	if deskType.Valid {
		desk.Type = &deskType.String
	}

	return &desk, nil
}
