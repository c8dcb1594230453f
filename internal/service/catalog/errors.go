package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому салону
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
