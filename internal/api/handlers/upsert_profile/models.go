package upsert_profile

import (
	"github.com/m04kA/yakidesk/internal/integrations/identity"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

// UpsertProfileRequest HTTP request model
// Пустые поля заполняются из токена провайдера идентификации
type UpsertProfileRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertProfileRequest) ToServiceRequest(id *identity.Identity) *models.UpsertProfileRequest {
	req := &models.UpsertProfileRequest{
		Name:      r.Name,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
	}
	if req.AvatarURL == nil && id != nil {
		req.AvatarURL = id.AvatarURL
	}
	return req
}
