package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	SalonID   string
	ServiceID string
	StartAt   time.Time // Момент начала

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	SalonID         string
	ServiceID       string
	ClientID        string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          string
	TotalAmount     float64

	// Денормализованные данные
	ServiceName   string
	CustomerName  string
	CustomerEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}
