package get_available_slots

import "time"

// Request модель запроса доступных слотов
type Request struct {
	SalonID   string
	ServiceID string
	Date      time.Time // Календарный день; время суток игнорируется
}

// Response упорядоченный список времен начала "HH:MM"
type Response struct {
	Slots []string
}
