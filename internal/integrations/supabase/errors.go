package supabase

import "errors"

var (
	// ErrInvalidToken возвращается, когда провайдер отклонил access token
	ErrInvalidToken = errors.New("supabase client: invalid or expired token")

	// ErrUserAlreadyRegistered возвращается, когда email уже зарегистрирован у провайдера
	ErrUserAlreadyRegistered = errors.New("supabase client: user already registered")

	// ErrUserNotFound возвращается, когда пользователь не найден у провайдера
	ErrUserNotFound = errors.New("supabase client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("supabase client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("supabase client: invalid response")
)
