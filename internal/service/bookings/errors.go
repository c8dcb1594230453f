package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или принадлежит другому салону
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotUnavailable возвращается, когда повторная активация пересекается с другим активным бронированием
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
