package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgUserNotFound     = "User not found"
)

// MeResponse HTTP response model
type MeResponse struct {
	User *models.UserResponse `json:"user"`
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

// Handle GET /api/auth/me
// Пользователь, еще не прошедший sync-user, получает 404.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.GetAuthID(r.Context())
	if !ok {
		h.logger.Warn("GET /auth/me - Missing auth ID")
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	user, err := h.service.Me(r.Context(), authID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			h.logger.Warn("GET /auth/me - User not found: auth_id=%s", authID)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /auth/me - Failed to get user: auth_id=%s, error=%v", authID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /auth/me - User retrieved: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusOK, MeResponse{User: user})
}
