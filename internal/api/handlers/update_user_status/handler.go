package update_user_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/service/users"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус, ожидается pending | approved | rejected"
	msgNotFound           = "пользователь не найден"
	msgForbidden          = "доступно только администратору"
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

// Handle PATCH /api/v1/users/{userId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	userID := mux.Vars(r)["userId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), actor, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("PATCH /users/{id}/status - Access denied: actor=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /users/{id}/status - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/status - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("PATCH /users/{id}/status - Store unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /users/{id}/status - Failed to update status: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/status - Status updated: user_id=%s, status=%s, by=%s",
		userID, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
