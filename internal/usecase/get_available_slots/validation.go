package get_available_slots

import (
	"fmt"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранную дату
func validateRequest(req *Request) (types.DateString, error) {
	if !req.Actor.IsAuthenticated() {
		return "", ErrUnauthenticated
	}

	if req.DeskID == "" {
		return "", fmt.Errorf("%w: deskId is required", ErrInvalidInput)
	}
	if len(req.DeskID) > domain.MaxDeskIDLength {
		return "", fmt.Errorf("%w: deskId is too long", ErrInvalidInput)
	}

	if req.Date == "" {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, nil
}
