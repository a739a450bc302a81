package root_role

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/users"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

const (
	msgNotFound     = "пользователь не найден"
	msgForbidden    = "доступно только администратору"
	msgCannotRevoke = "нельзя отозвать роль root у последнего администратора"
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

// HandleGrant PUT /api/v1/users/{userId}/roles/root
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PUT", h.service.GrantRoot)
}

// HandleRevoke DELETE /api/v1/users/{userId}/roles/root
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE", h.service.RevokeRoot)
}

type roleChange func(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error)

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, method string, change roleChange) {
	actor := middleware.GetActor(r.Context())
	userID := mux.Vars(r)["userId"]

	result, err := change(r.Context(), actor, userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("%s /users/{id}/roles/root - Access denied: actor=%s", method, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("%s /users/{id}/roles/root - Rejected: user_id=%s, error=%v", method, userID, err)
			handlers.RespondBadRequest(w, msgCannotRevoke)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("%s /users/{id}/roles/root - User not found: user_id=%s", method, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("%s /users/{id}/roles/root - Store unavailable: user_id=%s, error=%v", method, userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("%s /users/{id}/roles/root - Failed: user_id=%s, error=%v", method, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /users/{id}/roles/root - Roles updated: user_id=%s, root=%t, by=%s",
		method, userID, result.IsRoot, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
