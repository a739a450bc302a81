package desks

import (
	"context"
	"errors"
	"fmt"

	deskRepo "github.com/m04kA/yakidesk/internal/infra/storage/desk"
	"github.com/m04kA/yakidesk/internal/service/desks/models"
)

// Service сервис справочника столов
type Service struct {
	deskRepo DeskRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(deskRepo DeskRepository, logger Logger) *Service {
	return &Service{
		deskRepo: deskRepo,
		logger:   logger,
	}
}

// List возвращает все столы
func (s *Service) List(ctx context.Context) (*models.DeskListResponse, error) {
	desks, err := s.deskRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	out := make([]models.DeskResponse, 0, len(desks))
	for _, d := range desks {
		out = append(out, *models.FromDomainDesk(d))
	}

	return &models.DeskListResponse{Desks: out, Total: len(out)}, nil
}

// GetByID возвращает стол по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.DeskResponse, error) {
	desk, err := s.deskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, deskRepo.ErrDeskNotFound) {
			s.logger.Warn("GetByID: desk id=%s not found", id)
			return nil, ErrDeskNotFound
		}
		s.logger.Error("GetByID: repository error for desk id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainDesk(desk), nil
}
