package list_desks

import (
	"context"

	"github.com/m04kA/yakidesk/internal/service/desks/models"
)

type DeskService interface {
	List(ctx context.Context) (*models.DeskListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
