package register_owner

import "errors"

var (
	// ErrUserAlreadyExists возвращается, когда пользователь с таким email уже есть
	ErrUserAlreadyExists = errors.New("register_owner: user already exists")

	// ErrCodeGeneration возвращается, когда не удалось подобрать свободный код салона
	ErrCodeGeneration = errors.New("register_owner: failed to generate unique salon code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("register_owner: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("register_owner: internal error")
)
