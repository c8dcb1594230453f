package update_booking_status

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse тело ответа {"booking": {...}}
type UpdateStatusResponse struct {
	Booking *models.BookingResponse `json:"booking"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(salonID string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		SalonID: salonID,
		Status:  r.Status,
	}
}
