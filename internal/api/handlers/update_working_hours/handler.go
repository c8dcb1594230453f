package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNoSalon            = "No salon found for this user"
	msgSalonNotFound      = "Salon not found"
	msgInvalidHours       = "Invalid working hours"
)

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

// Handle PUT /api/salons/my/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/my/working-hours - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/my/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWorkingHours(r.Context(), salonID, req.WorkingHours)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("PUT /salons/my/working-hours - Invalid hours: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/my/working-hours - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("PUT /salons/my/working-hours - Failed to update: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/my/working-hours - Working hours updated: salon_id=%s", salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
