package get_salon_by_code

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

const (
	msgInvalidCode   = "Invalid salon code"
	msgSalonNotFound = "Salon not found"
)

// SalonByCodeResponse тело ответа {"salon": {...}}
type SalonByCodeResponse struct {
	Salon *models.SalonResponse `json:"salon"`
}

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/salon/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	salon, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("GET /bookings/salon/{code} - Salon not found: code=%s", code)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("GET /bookings/salon/{code} - Invalid code: code=%s", code)
			handlers.RespondBadRequest(w, msgInvalidCode)

		default:
			h.logger.Error("GET /bookings/salon/{code} - Failed to get salon: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/salon/{code} - Salon retrieved: code=%s, services=%d", salon.Code, len(salon.Services))
	handlers.RespondJSON(w, http.StatusOK, SalonByCodeResponse{Salon: salon})
}
