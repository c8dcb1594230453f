package get_salon_bookings

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// to включает указанный день целиком.
func ToServiceRequest(salonID, fromStr, toStr, statusStr string, loc *time.Location) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{SalonID: salonID}

	if fromStr != "" {
		from, err := handlers.ParseDate(fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := handlers.ParseDate(toStr, loc)
		if err != nil {
			return nil, err
		}
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
