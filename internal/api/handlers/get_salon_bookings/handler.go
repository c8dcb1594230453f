package get_salon_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgNoSalon       = "No salon found for this user"
	msgInvalidParams = "Invalid query parameters"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/bookings/salon-bookings
// Query params: from, to (YYYY-MM-DD), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Салон владельца из контекста (через middleware Authenticate)
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/salon-bookings - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(salonID, query.Get("from"), query.Get("to"), query.Get("status"), h.location)
	if err != nil {
		h.logger.Warn("GET /bookings/salon-bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/salon-bookings - Invalid filter: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings/salon-bookings - Failed to get bookings: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/salon-bookings - Bookings retrieved: salon_id=%s, count=%d", salonID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
