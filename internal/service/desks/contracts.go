package desks

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
)

// DeskRepository интерфейс справочника столов
type DeskRepository interface {
	List(ctx context.Context) ([]*domain.Desk, error)
	GetByID(ctx context.Context, id string) (*domain.Desk, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
