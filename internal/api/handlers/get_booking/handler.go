package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgNoSalon  = "No salon found for this user"
	msgNotFound = "Booking not found"
)

// BookingEnvelope тело ответа {"booking": {...}}
type BookingEnvelope struct {
	Booking *models.BookingResponse `json:"booking"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	// Бронирование чужого салона сервис возвращает как не найденное
	booking, err := h.service.GetByID(r.Context(), bookingID, salonID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s, salon_id=%s", bookingID, salonID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%s, salon_id=%s", bookingID, salonID)
	handlers.RespondJSON(w, http.StatusOK, BookingEnvelope{Booking: booking})
}
