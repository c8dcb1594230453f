package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether a booking with this status blocks its time range
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents a client's appointment at a salon.
// StartAt is the appointment instant; EndAt = StartAt + DurationMinutes.
type Booking struct {
	ID              string
	SalonID         string
	ServiceID       string
	ClientID        string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          BookingStatus
	TotalAmount     float64

	// Denormalized at creation so later service edits do not rewrite history
	ServiceName string

	// Filled by list queries that join related rows
	Service *Service
	Client  *User

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID    string         // Обязательный параметр
	From       *time.Time     // Начало периода включительно (опционально)
	To         *time.Time     // Конец периода не включительно (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
	OnlyActive bool           // Только PENDING/CONFIRMED
}
