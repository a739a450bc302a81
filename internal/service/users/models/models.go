package models

import (
	"time"

	"github.com/m04kA/yakidesk/internal/domain"
)

// UpsertProfileRequest поля профиля, присылаемые клиентом при входе
type UpsertProfileRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса пользователя
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ProfileResponse ответ с профилем пользователя
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Status    string    `json:"status"`
	Roles     []string  `json:"roles"`
	IsRoot    bool      `json:"isRoot"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileListResponse ответ со списком профилей
type ProfileListResponse struct {
	Users []ProfileResponse `json:"users"`
	Total int               `json:"total"`
}

// FromDomainProfile конвертирует domain.UserProfile в ProfileResponse
func FromDomainProfile(p *domain.UserProfile) *ProfileResponse {
	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, string(r))
	}

	return &ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Status:    string(p.Status),
		Roles:     roles,
		IsRoot:    p.IsRoot(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainProfileList конвертирует список профилей
func FromDomainProfileList(profiles []*domain.UserProfile) *ProfileListResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, *FromDomainProfile(p))
	}
	return &ProfileListResponse{Users: out, Total: len(out)}
}
