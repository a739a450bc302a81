package models

import "github.com/m04kA/yakidesk/internal/domain"

// DeskResponse ответ с данными стола
type DeskResponse struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Location *string `json:"location,omitempty"`
	Type     *string `json:"type,omitempty"`
}

// DeskListResponse ответ со списком столов
type DeskListResponse struct {
	Desks []DeskResponse `json:"desks"`
	Total int            `json:"total"`
}

// FromDomainDesk конвертирует domain.Desk в DeskResponse
func FromDomainDesk(d *domain.Desk) *DeskResponse {
	return &DeskResponse{
		ID:       d.ID,
		Label:    d.Label,
		Location: d.Location,
		Type:     d.Type,
	}
}
