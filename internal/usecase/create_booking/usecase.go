package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	bookingRepo "github.com/m04kA/yakidesk/internal/infra/storage/booking"
	deskRepo "github.com/m04kA/yakidesk/internal/infra/storage/desk"
	userRepo "github.com/m04kA/yakidesk/internal/infra/storage/user"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
	"github.com/m04kA/yakidesk/internal/resolver"
	"github.com/m04kA/yakidesk/pkg/ptr"
	"github.com/m04kA/yakidesk/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	deskRepo     DeskRepository
	userRepo     UserRepository
	resolver     BookingResolver
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher и metrics могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	deskRepo DeskRepository,
	userRepo UserRepository,
	resolver BookingResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		deskRepo:     deskRepo,
		userRepo:     userRepo,
		resolver:     resolver,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Create: повторная проверка конфликта и вставка в сериализуемой транзакции.
// CreateAndCancel: сначала удаляются вытесненные бронирования, затем создается новое.
// Это независимые операции, каждая получает свой OperationResult.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, desk=%s, date=%s, slot=%s, root=%t",
		req.Actor.UserID, req.DeskID, req.Date, req.TimeSlot, req.Actor.Root)

	// 1. Валидация входных данных
	date, slot, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Обычный пользователь должен быть одобрен
	if !req.Actor.CanOverride() {
		if err := uc.checkApproved(ctx, req.Actor.UserID); err != nil {
			return nil, err
		}
	}

	// 3. Проверяем существование стола
	desk, err := uc.deskRepo.GetByID(ctx, req.DeskID)
	if err != nil {
		if errors.Is(err, deskRepo.ErrDeskNotFound) {
			uc.logger.Warn("CreateBooking: desk id=%s not found", req.DeskID)
			return nil, ErrDeskNotFound
		}
		uc.logger.Error("CreateBooking: failed to get desk id=%s: %v", req.DeskID, err)
		return nil, fmt.Errorf("%w: failed to get desk: %v", ErrStoreUnavailable, err)
	}

	// 4. Снимок бронирований на дату
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Date: ptr.Ptr(date)})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
	}

	// 5. Решение по запросу
	action := uc.resolver.ResolveBooking(req.Actor, desk, date, slot, bookings)
	uc.recordAction(action)

	switch action.Kind {
	case resolver.ActionCreate:
		return uc.create(ctx, action)
	case resolver.ActionCreateAndCancel:
		return uc.override(ctx, req.Actor, action), nil
	default:
		return nil, uc.reject(req, action)
	}
}

// checkApproved проверяет статус профиля пользователя
func (uc *UseCase) checkApproved(ctx context.Context, userID string) error {
	profile, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s has no profile", userID)
			return fmt.Errorf("%w: profile not found", ErrNotApproved)
		}
		uc.logger.Error("CreateBooking: failed to get profile id=%s: %v", userID, err)
		return fmt.Errorf("%w: failed to get profile: %v", ErrStoreUnavailable, err)
	}

	if !profile.IsApproved() {
		uc.logger.Warn("CreateBooking: user id=%s has status %s", userID, profile.Status)
		return fmt.Errorf("%w: status %s", ErrNotApproved, profile.Status)
	}

	return nil
}

// create сохраняет бронирование, повторно проверяя конфликт внутри транзакции
func (uc *UseCase) create(ctx context.Context, action resolver.Action) (*Response, error) {
	booking := action.Booking
	op := OperationResult{Operation: OperationCreate, BookingID: booking.ID, Status: StatusPending}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingsFilter{
			Date:   ptr.Ptr(booking.Date),
			DeskID: ptr.Ptr(booking.DeskID),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to re-check bookings: %w", ErrStoreUnavailable, err)
		}

		if conflict := availability.FindConflict(current, booking.DeskID, booking.Date, booking.TimeSlot); conflict != nil {
			return fmt.Errorf("%w: taken by booking id=%s", ErrSlotTaken, conflict.ID)
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		op.Status = StatusFailed
		op.Error = err.Error()
		uc.recordOperation(op)

		if errors.Is(err, ErrSlotTaken) ||
			errors.Is(err, txmanager.ErrSerializationFailure) ||
			txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: slot %s on desk=%s date=%s lost to a concurrent booking: %v",
				booking.TimeSlot, booking.DeskID, booking.Date, err)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotTaken)
		}

		uc.logger.Error("CreateBooking: failed to store booking id=%s: %v", booking.ID, err)
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	op.Status = StatusConfirmed
	uc.recordOperation(op)
	uc.logger.Info("CreateBooking: created booking id=%s", booking.ID)

	uc.publish(ctx, notifier.Event{
		Type:       notifier.EventBookingCreated,
		BookingID:  booking.ID,
		DeskID:     booking.DeskID,
		UserID:     booking.UserID,
		Date:       booking.Date.String(),
		TimeSlot:   string(booking.TimeSlot),
		ActorID:    booking.UserID,
		OccurredAt: uc.timeProvider.Now().UTC(),
	})

	return &Response{
		Action:     action.Kind,
		Booking:    booking,
		Operations: []OperationResult{op},
	}, nil
}

// override удаляет вытесненные бронирования, затем создает новое
// Если какое-либо удаление не удалось, создание не выполняется:
// новое бронирование поверх существующего нарушило бы инвариант.
func (uc *UseCase) override(ctx context.Context, actor domain.Actor, action resolver.Action) *Response {
	booking := action.Booking

	ops := make([]OperationResult, 0, len(action.Superseded)+1)
	for _, old := range action.Superseded {
		ops = append(ops, OperationResult{Operation: OperationDelete, BookingID: old.ID, Status: StatusPending})
	}
	ops = append(ops, OperationResult{Operation: OperationCreate, BookingID: booking.ID, Status: StatusPending})
	createIdx := len(ops) - 1

	deleted := make([]*domain.Booking, 0, len(action.Superseded))
	deleteFailed := false

	for i, old := range action.Superseded {
		if deleteFailed {
			ops[i].Status = StatusFailed
			ops[i].Error = "skipped: previous delete failed"
			continue
		}

		err := uc.bookingRepo.Delete(ctx, old.ID)
		switch {
		case err == nil:
			ops[i].Status = StatusConfirmed
			deleted = append(deleted, old)
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			// Уже удалено: ячейка освобождена
			uc.logger.Warn("CreateBooking: superseded booking id=%s already gone", old.ID)
			ops[i].Status = StatusConfirmed
		default:
			uc.logger.Error("CreateBooking: failed to delete superseded booking id=%s: %v", old.ID, err)
			ops[i].Status = StatusFailed
			ops[i].Error = err.Error()
			deleteFailed = true
		}
	}

	if deleteFailed {
		ops[createIdx].Status = StatusFailed
		ops[createIdx].Error = "skipped: superseded booking was not deleted"
	} else if _, err := uc.bookingRepo.Create(ctx, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to create overriding booking id=%s: %v", booking.ID, err)
		ops[createIdx].Status = StatusFailed
		ops[createIdx].Error = err.Error()
	} else {
		ops[createIdx].Status = StatusConfirmed
		uc.logger.Info("CreateBooking: booking id=%s overrides %v", booking.ID, action.SupersededBookingIDs())
	}

	for _, op := range ops {
		uc.recordOperation(op)
	}

	// Уведомляем владельцев только о фактически удаленных бронированиях
	if ops[createIdx].Status == StatusConfirmed {
		for _, old := range deleted {
			uc.publish(ctx, notifier.Event{
				Type:                notifier.EventBookingOverridden,
				BookingID:           booking.ID,
				DeskID:              booking.DeskID,
				UserID:              booking.UserID,
				Date:                booking.Date.String(),
				TimeSlot:            string(booking.TimeSlot),
				ActorID:             actor.UserID,
				SupersededBookingID: old.ID,
				SupersededUserID:    old.UserID,
				OccurredAt:          uc.timeProvider.Now().UTC(),
			})
		}
	} else {
		for _, old := range deleted {
			uc.publishCancelled(ctx, actor, old)
		}
	}

	return &Response{
		Action:     action.Kind,
		Booking:    booking,
		Superseded: action.Superseded,
		Operations: ops,
	}
}

// reject переводит отказ резолвера в ошибку use case
func (uc *UseCase) reject(req *Request, action resolver.Action) error {
	switch action.Reason {
	case resolver.ReasonSlotTaken:
		uc.logger.Warn("CreateBooking: slot %s on desk=%s date=%s taken by booking id=%s",
			req.TimeSlot, req.DeskID, req.Date, action.Conflict.ID)
		return fmt.Errorf("%w: desk %s %s %s", ErrSlotTaken, req.DeskID, req.Date, req.TimeSlot)
	case resolver.ReasonUnauthenticated:
		return ErrUnauthenticated
	case resolver.ReasonUnknownDesk:
		return fmt.Errorf("%w: %s", ErrDeskNotFound, req.DeskID)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInput, action.Reason)
	}
}

func (uc *UseCase) publishCancelled(ctx context.Context, actor domain.Actor, old *domain.Booking) {
	uc.publish(ctx, notifier.Event{
		Type:       notifier.EventBookingCancelled,
		BookingID:  old.ID,
		DeskID:     old.DeskID,
		UserID:     old.UserID,
		Date:       old.Date.String(),
		TimeSlot:   string(old.TimeSlot),
		ActorID:    actor.UserID,
		OccurredAt: uc.timeProvider.Now().UTC(),
	})
}

// publish отправляет событие; ошибка публикации не влияет на результат
func (uc *UseCase) publish(ctx context.Context, event notifier.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}

func (uc *UseCase) recordAction(action resolver.Action) {
	if uc.metrics == nil {
		return
	}
	label := string(action.Kind)
	if action.IsReject() {
		label += "_" + string(action.Reason)
	}
	uc.metrics.RecordBookingAction(label)
}

func (uc *UseCase) recordOperation(op OperationResult) {
	if uc.metrics != nil {
		uc.metrics.RecordBookingOperation(string(op.Operation), string(op.Status))
	}
}

var _ BookingResolver = (*resolver.Resolver)(nil)
