package get_available_slots

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// DeskRepository интерфейс справочника столов
type DeskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Desk, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
