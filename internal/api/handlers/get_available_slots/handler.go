package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/yakidesk/internal/usecase/get_available_slots"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidInput = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDeskNotFound = "стол не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/desks/{deskId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deskID := mux.Vars(r)["deskId"]

	actor := middleware.GetActor(r.Context())
	if !actor.IsAuthenticated() {
		h.logger.Warn("GET /desks/{id}/available-slots - Unauthenticated request")
		handlers.RespondUnauthorized(w, "")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /desks/{id}/available-slots - Missing date: desk_id=%s", deskID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Actor:  actor,
		DeskID: deskID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /desks/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrDeskNotFound):
			h.logger.Warn("GET /desks/{id}/available-slots - Desk not found: desk_id=%s", deskID)
			handlers.RespondNotFound(w, msgDeskNotFound)

		case errors.Is(err, getAvailableSlots.ErrStoreUnavailable):
			h.logger.Error("GET /desks/{id}/available-slots - Store unavailable: desk_id=%s, error=%v", deskID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /desks/{id}/available-slots - Failed to get slots: desk_id=%s, error=%v", deskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /desks/{id}/available-slots - Slots retrieved: desk_id=%s, date=%s, count=%d",
		deskID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
