package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	bookingRepo "github.com/m04kA/yakidesk/internal/infra/storage/booking"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
	"github.com/m04kA/yakidesk/internal/resolver"
	"github.com/m04kA/yakidesk/internal/service/bookings/models"
	"github.com/m04kA/yakidesk/pkg/ptr"
	"github.com/m04kA/yakidesk/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
// publisher и metrics могут быть nil
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирования видны всем пользователям: по ним строится сетка занятости.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetByDate получает все бронирования на дату
// Для root дополнительно возвращает пары пересекающихся бронирований.
func (s *Service) GetByDate(ctx context.Context, actor domain.Actor, rawDate string) (*models.DayBookingsResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	date, err := types.NewDateStringFromString(rawDate)
	if err != nil {
		s.logger.Warn("GetByDate: invalid date=%q: %v", rawDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("GetByDate: fetching bookings for date=%s, user=%s", date, actor.UserID)

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Date: ptr.Ptr(date)})
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrStoreUnavailable, err)
	}

	list := models.FromDomainBookingList(bookings)
	resp := &models.DayBookingsResponse{
		Date:     date.String(),
		Bookings: list.Bookings,
		Total:    list.Total,
	}

	if actor.CanOverride() {
		violations := availability.FindViolations(bookings)
		if len(violations) > 0 {
			s.logger.Warn("GetByDate: %d double-booked cells on date=%s", len(violations), date)
			resp.Violations = models.FromViolations(violations)
		}
	}

	return resp, nil
}

// GetUserBookings получает бронирования пользователя, отсортированные по дате и слоту
// Доступно самому пользователю и root
func (s *Service) GetUserBookings(ctx context.Context, actor domain.Actor, userID string) (*models.BookingListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if actor.UserID != userID && !actor.CanOverride() {
		s.logger.Warn("GetUserBookings: user=%s tried to read bookings of user=%s", actor.UserID, userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{UserID: ptr.Ptr(userID)})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrStoreUnavailable, err)
	}

	models.SortByDateAndSlot(bookings)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel удаляет бронирование
// Владелец может удалить своё бронирование, root - любое.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID string) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, actor.UserID)

	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	decision := resolver.ResolveCancel(actor, booking)
	switch decision.Kind {
	case resolver.CancelUnauthenticated:
		return nil, ErrUnauthenticated
	case resolver.CancelForbidden:
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, decision.BookingID); err != nil {
		s.recordOperation("failed")
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during delete", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrStoreUnavailable, err)
	}
	s.recordOperation("confirmed")

	s.publish(ctx, notifier.Event{
		Type:       notifier.EventBookingCancelled,
		BookingID:  booking.ID,
		DeskID:     booking.DeskID,
		UserID:     booking.UserID,
		Date:       booking.Date.String(),
		TimeSlot:   string(booking.TimeSlot),
		ActorID:    actor.UserID,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("Cancel: successfully deleted booking id=%s (override=%t)", bookingID, decision.ByOverride)
	return &models.CancelResponse{BookingID: booking.ID, ByOverride: decision.ByOverride}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}

	return booking, nil
}

func (s *Service) publish(ctx context.Context, event notifier.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}

func (s *Service) recordOperation(status string) {
	if s.metrics != nil {
		s.metrics.RecordBookingOperation("delete", status)
	}
}
