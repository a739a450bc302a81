package get_bookings_by_date

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/bookings/models"
)

type BookingService interface {
	GetByDate(ctx context.Context, actor domain.Actor, rawDate string) (*models.DayBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
