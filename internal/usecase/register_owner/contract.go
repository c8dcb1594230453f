package register_owner

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Salon, error)
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
}

// AuthProvider интерфейс провайдера идентификации
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password string, metadata map[string]interface{}) (*supabase.AuthUser, error)
	FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator генератор публичного кода салона
type CodeGenerator func() (string, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
