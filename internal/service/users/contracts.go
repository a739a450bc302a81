package users

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
)

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]*domain.UserProfile, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
	SetRoles(ctx context.Context, id string, roles []domain.Role) error
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
