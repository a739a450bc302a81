package list_desks

import (
	"net/http"

	"github.com/m04kA/yakidesk/internal/api/handlers"
)

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

// Handle GET /api/v1/desks
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /desks - Failed to list desks: error=%v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /desks - Desks retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
