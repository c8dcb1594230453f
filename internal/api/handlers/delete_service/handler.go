package delete_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

const (
	msgNoSalon  = "No salon found for this user"
	msgNotFound = "Service not found"
	msgDeleted  = "Service deleted successfully"
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

// Handle DELETE /api/services/{id}
// Услуга только деактивируется: на нее ссылаются бронирования.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["id"]

	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, salonID); err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%s, salon_id=%s", serviceID, salonID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%s, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deactivated: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgDeleted})
}
