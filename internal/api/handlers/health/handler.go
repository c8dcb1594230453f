package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const readyTimeout = 2 * time.Second

// Pinger проверка доступности хранилища (*dbmetrics.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// StatusResponse HTTP response model
type StatusResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	pinger Pinger
	logger Logger
}

// NewHandler pinger может быть nil (хранилище в памяти)
func NewHandler(pinger Pinger, logger Logger) *Handler {
	return &Handler{
		pinger: pinger,
		logger: logger,
	}
}

// Live GET /api/health
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, status("OK", "Salon booking API is running"))
}

// Ready GET /api/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /ready - Storage unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, status("UNAVAILABLE", "storage is not reachable"))
			return
		}
	}
	handlers.RespondJSON(w, http.StatusOK, status("OK", "ready"))
}

func status(s, message string) StatusResponse {
	return StatusResponse{
		Status:    s,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
