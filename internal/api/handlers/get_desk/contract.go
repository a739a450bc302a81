package get_desk

import (
	"context"

	"github.com/m04kA/yakidesk/internal/service/desks/models"
)

type DeskService interface {
	GetByID(ctx context.Context, id string) (*models.DeskResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
