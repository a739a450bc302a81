package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
	"github.com/m04kA/yakidesk/internal/resolver"
	"github.com/m04kA/yakidesk/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// DeskRepository интерфейс справочника столов
type DeskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Desk, error)
}

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
}

// BookingResolver принимает решение по запросу на бронирование
type BookingResolver interface {
	ResolveBooking(actor domain.Actor, desk *domain.Desk, date types.DateString, slot domain.TimeSlot, bookings []*domain.Booking) resolver.Action
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события бронирований (может быть nil)
type EventPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// MetricsRecorder записывает исходы бронирований (может быть nil)
type MetricsRecorder interface {
	RecordBookingAction(action string)
	RecordBookingOperation(operation, status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
