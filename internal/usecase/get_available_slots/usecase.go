package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/yakidesk/internal/availability"
	"github.com/m04kA/yakidesk/internal/domain"
	deskRepo "github.com/m04kA/yakidesk/internal/infra/storage/desk"
	"github.com/m04kA/yakidesk/pkg/ptr"
)

// UseCase use case для получения слотов стола на дату
type UseCase struct {
	bookingRepo BookingRepository
	deskRepo    DeskRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, deskRepo DeskRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		deskRepo:    deskRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов
// Обычный пользователь получает только свободные слоты,
// пользователь с правом переопределения получает все слоты с отметкой занятости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%s, desk=%s, date=%s, root=%t",
		req.Actor.UserID, req.DeskID, req.Date, req.Actor.Root)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование стола
	desk, err := uc.deskRepo.GetByID(ctx, req.DeskID)
	if err != nil {
		if errors.Is(err, deskRepo.ErrDeskNotFound) {
			uc.logger.Warn("GetAvailableSlots: desk id=%s not found", req.DeskID)
			return nil, ErrDeskNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get desk id=%s: %v", req.DeskID, err)
		return nil, fmt.Errorf("%w: failed to get desk: %v", ErrStoreUnavailable, err)
	}

	// 3. Снимок бронирований на дату
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Date: ptr.Ptr(date)})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
	}

	resp := &Response{
		DeskID:       desk.ID,
		Date:         date,
		OverrideMode: req.Actor.CanOverride(),
	}

	// 4. Root видит все слоты с отметкой занятости
	if resp.OverrideMode {
		for _, opt := range availability.SlotOptions(desk.ID, date, bookings) {
			resp.Slots = append(resp.Slots, Slot{
				TimeSlot: opt.Slot,
				Label:    opt.Label,
				Booked:   opt.Booked,
				Booking:  opt.Booking,
			})
		}
		return resp, nil
	}

	resp.Slots = make([]Slot, 0, len(domain.AllTimeSlots()))
	for _, slot := range availability.AvailableSlots(desk.ID, date, bookings) {
		resp.Slots = append(resp.Slots, Slot{TimeSlot: slot, Label: slot.Label()})
	}

	uc.logger.Info("GetAvailableSlots: desk=%s, date=%s, %d slots available", desk.ID, date, len(resp.Slots))

	return resp, nil
}
