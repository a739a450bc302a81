package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	createBooking "github.com/m04kA/yakidesk/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgInvalidBookingDate = "нельзя забронировать стол на прошедшую дату"
	msgSlotTaken          = "выбранный слот уже занят"
	msgDeskNotFound       = "стол не найден"
	msgNotApproved        = "профиль пользователя не одобрен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// 201 - бронирование создано (в т.ч. с вытеснением).
// 503 - при переопределении не удалась одна из операций, тело содержит результаты операций.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if !actor.IsAuthenticated() {
		h.logger.Warn("POST /bookings - Unauthenticated request")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrUnauthenticated):
			h.logger.Warn("POST /bookings - Unauthenticated: user_id=%s", actor.UserID)
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, createBooking.ErrNotApproved):
			h.logger.Warn("POST /bookings - User not approved: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgNotApproved)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%s, desk_id=%s, date=%s, slot=%s",
				actor.UserID, req.DeskID, req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrDeskNotFound):
			h.logger.Warn("POST /bookings - Desk not found: desk_id=%s", req.DeskID)
			handlers.RespondNotFound(w, msgDeskNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%s, date=%s", actor.UserID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, desk_id=%s, error=%v",
				actor.UserID, req.DeskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if !result.Created() {
		h.logger.Error("POST /bookings - Override partially failed: booking_id=%s, action=%s",
			result.Booking.ID, result.Action)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, action=%s",
		result.Booking.ID, actor.UserID, result.Action)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
