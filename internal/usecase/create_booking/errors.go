package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другому салону
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotUnavailable возвращается, когда интервал пересекается с активным бронированием,
	// в том числе если конкурентный запрос занял его первым
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время начала не на сетке слотов или вне рабочих часов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDate возвращается, когда время начала уже прошло
	ErrInvalidDate = errors.New("create_booking: booking time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")

	// errCustomerRace клиент с тем же email создан конкурентной транзакцией
	errCustomerRace = errors.New("create_booking: customer created concurrently")
)
