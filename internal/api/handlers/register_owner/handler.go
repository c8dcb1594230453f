package register_owner

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	registerOwner "github.com/m04kA/SMC-SalonBooking/internal/usecase/register_owner"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Email, password (6+ characters), name and salon name are required"
	msgUserExists         = "User already exists. Please login instead."
	msgRegistered         = "Registration successful"
)

type Handler struct {
	useCase RegisterOwnerUseCase
	logger  Logger
}

func NewHandler(useCase RegisterOwnerUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, registerOwner.ErrUserAlreadyExists):
			h.logger.Warn("POST /auth/register - User exists: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgUserExists)

		case errors.Is(err, registerOwner.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/register - Registration failed: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - Owner registered: user_id=%s, salon_code=%s", result.User.ID, result.Salon.Code)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
