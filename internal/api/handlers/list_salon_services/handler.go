package list_salon_services

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

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

// Handle GET /api/services/salon/{salonId}
// Только активные услуги, по имени. Неизвестный салон дает пустой список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	result, err := h.service.ListPublic(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /services/salon/{id} - Failed to list services: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/salon/{id} - Services retrieved: salon_id=%s, count=%d", salonID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
