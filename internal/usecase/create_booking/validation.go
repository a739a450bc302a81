package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

// validateRequest валидирует входные данные и разбирает дату и слот
func validateRequest(req *Request) (types.DateString, domain.TimeSlot, error) {
	if !req.Actor.IsAuthenticated() {
		return "", "", ErrUnauthenticated
	}

	if req.DeskID == "" {
		return "", "", fmt.Errorf("%w: deskId is required", ErrInvalidInput)
	}
	if len(req.DeskID) > domain.MaxDeskIDLength {
		return "", "", fmt.Errorf("%w: deskId is too long", ErrInvalidInput)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot, err := domain.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, slot, nil
}

// validateDate проверяет, что дата не в прошлом (сегодня бронировать можно)
func validateDate(date types.DateString, now time.Time) error {
	today := types.NewDateString(now)
	if date.IsBefore(today) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidDate, date, today)
	}
	return nil
}
