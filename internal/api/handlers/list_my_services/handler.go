package list_my_services

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const msgNoSalon = "No salon found for this user"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/services/my-services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /services/my-services - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	result, err := h.service.ListOwn(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /services/my-services - Failed to list services: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/my-services - Services retrieved: salon_id=%s, count=%d", salonID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
