package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyAuthID
	ctxKeyUser
)

// WithAuthID кладет ID пользователя провайдера в контекст
func WithAuthID(ctx context.Context, authID string) context.Context {
	return context.WithValue(ctx, ctxKeyAuthID, authID)
}

// GetAuthID ID пользователя провайдера, проверенный VerifyToken/Authenticate
func GetAuthID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyAuthID).(string)
	return id, ok && id != ""
}

// WithUser кладет пользователя сервиса в контекст
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// GetUser пользователь сервиса, найденный Authenticate
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(*domain.User)
	return user, ok && user != nil
}

// GetSalonID ID салона текущего владельца
func GetSalonID(ctx context.Context) (string, bool) {
	user, ok := GetUser(ctx)
	if !ok || user.OwnedSalon == nil {
		return "", false
	}
	return user.OwnedSalon.ID, true
}

// GetRequestID ID запроса из RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
