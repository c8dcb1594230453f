package sync_user

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
)

type UserService interface {
	SyncUser(ctx context.Context, req *models.SyncUserRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
