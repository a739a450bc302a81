package get_desk

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/service/desks"
)

const msgDeskNotFound = "стол не найден"

type Handler struct {
	service DeskService
	logger  Logger
}

func NewHandler(service DeskService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/desks/{deskId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deskID := mux.Vars(r)["deskId"]

	result, err := h.service.GetByID(r.Context(), deskID)
	if err != nil {
		switch {
		case errors.Is(err, desks.ErrDeskNotFound):
			h.logger.Warn("GET /desks/{id} - Desk not found: desk_id=%s", deskID)
			handlers.RespondNotFound(w, msgDeskNotFound)

		default:
			h.logger.Error("GET /desks/{id} - Failed to get desk: desk_id=%s, error=%v", deskID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
