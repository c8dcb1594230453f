package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNoSalon            = "No salon found for this user"
	msgInvalidService     = "Invalid service data"
)

// ServiceEnvelope тело ответа {"service": {...}}
type ServiceEnvelope struct {
	Service *models.ServiceResponse `json:"service"`
}

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

// Handle POST /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Owner has no salon")
		handlers.RespondBadRequest(w, msgNoSalon)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /services - Invalid service: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidService)
			return
		}
		h.logger.Error("POST /services - Failed to create service: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%s, salon_id=%s", result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, ServiceEnvelope{Service: result})
}
