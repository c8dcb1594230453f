package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required fields"
	msgInvalidInput       = "Invalid customer data"
	msgInvalidDate        = "Invalid booking date"
	msgSlotUnavailable    = "This slot is no longer available"
	msgInvalidTimeSlot    = "Requested time is not a bookable slot"
	msgPastDate           = "Booking time is in the past"
	msgSalonNotFound      = "Salon not found"
	msgServiceNotFound    = "Service not found"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/bookings/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SalonID == "" || req.ServiceID == "" || req.Date == "" || req.CustomerName == "" || req.CustomerEmail == "" {
		h.logger.Warn("POST /bookings/book - Missing fields: salon_id=%q, service_id=%q", req.SalonID, req.ServiceID)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом момента начала)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings/book - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings/book - Slot unavailable: salon_id=%s, start=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings/book - Salon not found: salon_id=%s", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/book - Service not found: salon_id=%s, service_id=%s", req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/book - Invalid time slot: salon_id=%s, start=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/book - Start in the past: salon_id=%s, start=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/book - Failed to create booking: salon_id=%s, service_id=%s, error=%v",
				req.SalonID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/book - Booking created: booking_id=%s, salon_id=%s, start=%s",
		result.ID, result.SalonID, result.StartAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
