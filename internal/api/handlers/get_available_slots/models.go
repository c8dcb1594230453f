package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsRequest HTTP request model
type AvailableSlotsRequest struct {
	SalonID   string `json:"salonId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"` // "2025-10-15" или RFC 3339
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots []string `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AvailableSlotsRequest) ToUseCaseRequest(loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	return &AvailableSlotsResponse{Slots: slots}
}
