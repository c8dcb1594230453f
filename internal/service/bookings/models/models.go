package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	SalonID string `json:"-"` // Салон вызывающего владельца
	Status  string `json:"status"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	SalonID string     `json:"-"`
	From    *time.Time `json:"from,omitempty"`   // Начало периода включительно (опционально)
	To      *time.Time `json:"to,omitempty"`     // Конец периода не включительно (опционально)
	Status  *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID: r.SalonID,
		From:    r.From,
		To:      r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ServiceSummary услуга в ответе бронирования
type ServiceSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
}

// ClientSummary клиент в ответе бронирования
type ClientSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string  `json:"id"`
	SalonID         string  `json:"salonId"`
	ServiceID       string  `json:"serviceId"`
	ClientID        string  `json:"clientId"`
	Date            string  `json:"date"`  // Начало, RFC 3339
	EndAt           string  `json:"endAt"` // Конец, RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"totalAmount"`
	ServiceName     string  `json:"serviceName"`

	Service *ServiceSummary `json:"service,omitempty"`
	Client  *ClientSummary  `json:"client,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		SalonID:         b.SalonID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		Date:            b.StartAt.Format(time.RFC3339),
		EndAt:           b.EndAt.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		ServiceName:     b.ServiceName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Service != nil {
		resp.Service = &ServiceSummary{
			ID:              b.Service.ID,
			Name:            b.Service.Name,
			Price:           b.Service.Price,
			DurationMinutes: b.Service.DurationMinutes,
		}
	}

	if b.Client != nil {
		resp.Client = &ClientSummary{
			ID:    b.Client.ID,
			Name:  b.Client.Name,
			Email: b.Client.Email,
			Phone: b.Client.Phone,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if b != nil {
			resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в статус (регистр не важен)
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
