package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newService() *Service {
	return NewService(memory.NewServiceRepository(memory.NewStore()), logger.Nop())
}

func create(t *testing.T, svc *Service, salonID, name string) *models.ServiceResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		SalonID: salonID, Name: name, Price: 20, DurationMinutes: 30,
	})
	require.NoError(t, err)
	// CreatedAt у услуг в памяти различается
	time.Sleep(time.Millisecond)
	return resp
}

func TestListPublic_OnlyActiveByName(t *testing.T) {
	svc := newService()
	create(t, svc, "salon-1", "Manicure")
	hidden := create(t, svc, "salon-1", "Beard trim")
	create(t, svc, "salon-1", "Coloring")
	create(t, svc, "salon-2", "Other")
	require.NoError(t, svc.Delete(context.Background(), hidden.ID, "salon-1"))

	public, err := svc.ListPublic(context.Background(), "salon-1")
	require.NoError(t, err)
	require.Len(t, public.Services, 2)
	assert.Equal(t, "Coloring", public.Services[0].Name)
	assert.Equal(t, "Manicure", public.Services[1].Name)

	own, err := svc.ListOwn(context.Background(), "salon-1")
	require.NoError(t, err)
	require.Len(t, own.Services, 3)
	assert.Equal(t, "Coloring", own.Services[0].Name)
	assert.False(t, own.Services[1].Active)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{name: "empty name", req: models.CreateServiceRequest{Name: " ", Price: 10, DurationMinutes: 30}},
		{name: "negative price", req: models.CreateServiceRequest{Name: "Cut", Price: -1, DurationMinutes: 30}},
		{name: "zero duration", req: models.CreateServiceRequest{Name: "Cut", Price: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_PartialAndOwnership(t *testing.T) {
	svc := newService()
	created := create(t, svc, "salon-1", "Haircut")

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{
		SalonID: "salon-1", Price: ptr.Ptr(35.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.Price)
	assert.Equal(t, "Haircut", updated.Name)
	assert.Equal(t, 30, updated.DurationMinutes)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{SalonID: "salon-2", Price: ptr.Ptr(1.0)})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	err = svc.Delete(context.Background(), created.ID, "salon-2")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{SalonID: "salon-1", DurationMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
