package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
)

// TokenVerifier проверка bearer токена у провайдера идентификации
type TokenVerifier interface {
	GetUser(ctx context.Context, token string) (*supabase.AuthUser, error)
}

// IdentityResolver пользователь сервиса по ID провайдера
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, authID string) (*domain.User, error)
}

// RateLimitRecorder счетчик отклоненных запросов (*metrics.Metrics)
type RateLimitRecorder interface {
	IncRateLimited(route string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
