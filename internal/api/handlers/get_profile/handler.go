package get_profile

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/service/users"
)

const (
	selfAlias = "me"

	msgNotFound  = "профиль не найден"
	msgForbidden = "доступ запрещен"
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

// Handle GET /api/v1/users/me и GET /api/v1/users/{userId}
// Чужой профиль доступен только root
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	userID, ok := mux.Vars(r)["userId"]
	if !ok || userID == selfAlias {
		userID = actor.UserID
	}

	result, err := h.service.GetProfile(r.Context(), actor, userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUnauthenticated):
			h.logger.Warn("GET /users/{id} - Unauthenticated request")
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("GET /users/{id} - Access denied: user_id=%s, actor=%s", userID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/{id} - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("GET /users/{id} - Store unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /users/{id} - Failed to get profile: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id} - Profile retrieved: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
