package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*getAvailableSlots.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/available-slots", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	uc := &mockUseCase{}
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
		return r.SalonID == "salon-1" && r.ServiceID == "service-1" && r.Date.Equal(day)
	})).Return(&getAvailableSlots.Response{Slots: []string{"09:00", "09:30"}}, nil)

	rec := post(NewHandler(uc, loc, logger.Nop()), `{"salonId":"salon-1","serviceId":"service-1","date":"2025-03-10"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slots":["09:00","09:30"]}`, rec.Body.String())
}

func TestHandle_EmptySlotsIsArray(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{}, nil)

	rec := post(NewHandler(uc, time.UTC, logger.Nop()), `{"salonId":"s","serviceId":"x","date":"2025-03-09"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool { return r.SalonID == "missing" })).
		Return(nil, getAvailableSlots.ErrSalonNotFound)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool { return r.SalonID == "salon-1" })).
		Return(nil, getAvailableSlots.ErrServiceNotFound)
	h := NewHandler(uc, time.UTC, logger.Nop())

	assert.Equal(t, http.StatusNotFound, post(h, `{"salonId":"missing","serviceId":"x","date":"2025-03-10"}`).Code)
	assert.Equal(t, http.StatusNotFound, post(h, `{"salonId":"salon-1","serviceId":"x","date":"2025-03-10"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"salonId":"salon-1","serviceId":"x","date":"10/03/2025"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"salonId":"salon-1"}`).Code)
}
