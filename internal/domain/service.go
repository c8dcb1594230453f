package domain

import "time"

// Service is something a salon offers for booking
type Service struct {
	ID              string
	SalonID         string
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceUpdate partial update; nil fields are left unchanged
type ServiceUpdate struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	Active          *bool
}

// IsEmpty reports an update that changes nothing
func (u ServiceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.DurationMinutes == nil && u.Active == nil
}
