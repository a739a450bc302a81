package upsert_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/yakidesk/internal/api/handlers"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidProfile     = "некорректные данные профиля"
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

// Handle PUT /api/v1/users/me
// Вызывается клиентом после каждого входа: первый вход создает профиль со статусом pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req UpsertProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PUT /users/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertProfile(r.Context(), actor, req.ToServiceRequest(middleware.GetIdentity(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUnauthenticated):
			h.logger.Warn("PUT /users/me - Unauthenticated request")
			handlers.RespondUnauthorized(w, "")

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /users/me - Invalid profile: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidProfile)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("PUT /users/me - Store unavailable: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /users/me - Failed to upsert profile: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /users/me - Profile saved: user_id=%s, status=%s, root=%t",
		result.ID, result.Status, result.IsRoot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
