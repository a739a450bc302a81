package bookings

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher публикует события бронирований (может быть nil)
type EventPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// MetricsRecorder записывает исходы операций (может быть nil)
type MetricsRecorder interface {
	RecordBookingOperation(operation, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
