package salons

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Salon, error)
	GetByCode(ctx context.Context, code string) (*domain.Salon, error)
	UpdateWorkingHours(ctx context.Context, id string, hours domain.WorkingHours) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListBySalon(ctx context.Context, salonID string, onlyActive bool) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
