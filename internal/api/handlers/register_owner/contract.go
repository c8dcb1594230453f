package register_owner

import (
	"context"

	registerOwner "github.com/m04kA/SMC-SalonBooking/internal/usecase/register_owner"
)

type RegisterOwnerUseCase interface {
	Execute(ctx context.Context, req *registerOwner.Request) (*registerOwner.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
