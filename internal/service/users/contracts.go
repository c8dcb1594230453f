package users

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByAuthID(ctx context.Context, authID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
