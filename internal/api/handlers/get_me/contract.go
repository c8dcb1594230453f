package get_me

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
)

type UserService interface {
	Me(ctx context.Context, authID string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
