package list_users

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

type UserService interface {
	ListByStatus(ctx context.Context, actor domain.Actor, rawStatus string) (*models.ProfileListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
