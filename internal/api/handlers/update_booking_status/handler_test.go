package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if resp, ok := args.Get(0).(*models.BookingResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func patch(svc BookingService, owner *domain.User, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/bookings/{id}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/booking-1/status", strings.NewReader(body))
	if owner != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), owner))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var owner = &domain.User{ID: "u1", Role: domain.RoleSalonOwner, OwnedSalon: &domain.Salon{ID: "salon-1"}}

func TestHandle_Updates(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, "booking-1", &models.UpdateStatusRequest{SalonID: "salon-1", Status: "CANCELLED"}).
		Return(&models.BookingResponse{ID: "booking-1", Status: "CANCELLED"}, nil)

	rec := patch(svc, owner, `{"status":"CANCELLED"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CANCELLED"`)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "other salon", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "bad status", err: bookings.ErrInvalidStatus, status: http.StatusBadRequest},
		{name: "reactivation overlap", err: bookings.ErrSlotUnavailable, status: http.StatusBadRequest},
		{name: "internal", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, patch(svc, owner, `{"status":"CONFIRMED"}`).Code)
		})
	}
}

func TestHandle_OwnerWithoutSalon(t *testing.T) {
	svc := &mockService{}
	noSalon := &domain.User{ID: "u2", Role: domain.RoleSalonOwner}

	rec := patch(svc, noSalon, `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
