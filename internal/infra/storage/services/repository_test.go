package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestListBySalon_ActiveOrderedByName(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(serviceColumns).
		AddRow("svc-1", "salon-1", "Coloring", nil, "80.00", 90, true, now, now).
		AddRow("svc-2", "salon-1", "Haircut", "Classic cut", "25.00", 30, true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, salon_id, name, description, price, duration_minutes, active, created_at, updated_at FROM services WHERE salon_id = $1 AND active = $2 ORDER BY name ASC")).
		WithArgs("salon-1", true).
		WillReturnRows(rows)

	services, err := repo.ListBySalon(context.Background(), "salon-1", true)

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Nil(t, services[0].Description)
	require.NotNil(t, services[1].Description)
	assert.Equal(t, "Classic cut", *services[1].Description)
	assert.Equal(t, 25.0, services[1].Price)
}

func TestUpdate_OnlyChangedFields(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE services SET updated_at = NOW(), price = $1 WHERE id = $2 RETURNING")).
		WithArgs(30.0, "svc-1").
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow("svc-1", "salon-1", "Haircut", nil, "30.00", 30, true, now, now))

	service, err := repo.Update(context.Background(), "svc-1", domain.ServiceUpdate{Price: ptr.Ptr(30.0)})

	require.NoError(t, err)
	assert.Equal(t, 30.0, service.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("UPDATE services SET").
		WillReturnRows(sqlmock.NewRows(serviceColumns))

	err := repo.SoftDelete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
