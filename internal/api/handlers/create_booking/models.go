package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID       string  `json:"salonId"`
	ServiceID     string  `json:"serviceId"`
	Date          string  `json:"date"` // Начало: RFC 3339 или "2025-10-15T10:30"
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	SalonID         string  `json:"salonId"`
	ServiceID       string  `json:"serviceId"`
	ClientID        string  `json:"clientId"`
	Date            string  `json:"date"`
	EndAt           string  `json:"endAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"totalAmount"`
	ServiceName     string  `json:"serviceName"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// CreateBookingResponse тело ответа {"booking": {...}}
type CreateBookingResponse struct {
	Booking *BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	startAt, err := handlers.ParseInstant(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SalonID:       r.SalonID,
		ServiceID:     r.ServiceID,
		StartAt:       startAt,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: &BookingResponse{
			ID:              resp.ID,
			SalonID:         resp.SalonID,
			ServiceID:       resp.ServiceID,
			ClientID:        resp.ClientID,
			Date:            resp.StartAt.In(loc).Format(time.RFC3339),
			EndAt:           resp.EndAt.In(loc).Format(time.RFC3339),
			DurationMinutes: resp.DurationMinutes,
			Status:          resp.Status,
			TotalAmount:     resp.TotalAmount,
			ServiceName:     resp.ServiceName,
			CustomerName:    resp.CustomerName,
			CustomerEmail:   resp.CustomerEmail,
			CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
			UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
		},
	}
}
