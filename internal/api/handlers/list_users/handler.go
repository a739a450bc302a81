package list_users

import (
	"errors"
	"net/http"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/service/users"
)

const (
	msgInvalidStatus = "некорректный статус, ожидается pending | approved | rejected"
	msgForbidden     = "доступно только администратору"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users
// Query params: status (опционально, по умолчанию pending)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	status := r.URL.Query().Get("status")

	result, err := h.service.ListByStatus(r.Context(), actor, status)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("GET /users - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("GET /users - Invalid status: %q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("GET /users - Store unavailable: error=%v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /users - Failed to list users: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users - Users retrieved: status=%s, count=%d", status, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
