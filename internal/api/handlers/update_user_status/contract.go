package update_user_status

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

type UserService interface {
	UpdateStatus(ctx context.Context, actor domain.Actor, userID string, req *models.UpdateStatusRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
