package get_bookings_by_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/service/bookings"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: date (required, YYYY-MM-DD)
// Для root в ответ добавляются пересекающиеся бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetByDate(r.Context(), actor, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthenticated):
			h.logger.Warn("GET /bookings - Unauthenticated request")
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings - Store unavailable: date=%s, error=%v", date, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if len(result.Violations) > 0 {
		h.logger.Warn("GET /bookings - Overlapping bookings found: date=%s, violations=%d",
			date, len(result.Violations))
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: date=%s, count=%d", date, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
