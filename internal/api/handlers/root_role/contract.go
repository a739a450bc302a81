package root_role

import (
	"context"

	"github.com/m04kA/yakidesk/internal/domain"
	"github.com/m04kA/yakidesk/internal/service/users/models"
)

type UserService interface {
	GrantRoot(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error)
	RevokeRoot(ctx context.Context, actor domain.Actor, userID string) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
