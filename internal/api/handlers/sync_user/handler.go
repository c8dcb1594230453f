package sync_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required fields"
)

// SyncUserResponse HTTP response model
type SyncUserResponse struct {
	Success bool                 `json:"success"`
	User    *models.UserResponse `json:"user"`
}

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/auth/sync-user
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SyncUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/sync-user - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.SyncUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, users.ErrInvalidInput) {
			h.logger.Warn("POST /auth/sync-user - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)
			return
		}
		h.logger.Error("POST /auth/sync-user - Failed to sync user: auth_id=%s, error=%v", req.AuthID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/sync-user - User synced: user_id=%s, role=%s", user.ID, user.Role)
	handlers.RespondJSON(w, http.StatusOK, SyncUserResponse{Success: true, User: user})
}
