package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func inTx(t *testing.T, db *dbmetrics.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), tx)
}

func TestLockSalon_RequiresTransaction(t *testing.T) {
	repo, _, _ := newRepo(t)

	err := repo.LockSalon(context.Background(), "salon-1")

	assert.ErrorIs(t, err, ErrTransaction)
}

func TestLockSalon_AdvisoryLock(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := inTx(t, db, mock)

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("salon-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.LockSalon(ctx, "salon-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_AssignsIDAndEnd(t *testing.T) {
	repo, _, mock := newRepo(t)
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(sqlmock.AnyArg(), "salon-1", "svc-1", "client-1", start, start.Add(time.Hour), 60,
			domain.StatusConfirmed, 45.0, "Haircut").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	booking, err := repo.Create(context.Background(), &domain.Booking{
		SalonID:         "salon-1",
		ServiceID:       "svc-1",
		ClientID:        "client-1",
		StartAt:         start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		TotalAmount:     45,
		ServiceName:     "Haircut",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, start.Add(time.Hour), booking.EndAt)
	assert.Equal(t, created, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolationIsSlotNotAvailable(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		SalonID: "salon-1", StartAt: time.Now(), DurationMinutes: 30, Status: domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreate_SerializationFailure(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Booking{StartAt: time.Now(), DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestGetActiveBySalonAndPeriod_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := inTx(t, db, mock)
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	start := from.Add(10 * time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "salon_id", "service_id", "client_id", "start_at", "end_at", "duration_minutes",
		"status", "total_amount", "service_name", "created_at", "updated_at",
	}).AddRow("b-1", "salon-1", "svc-1", "client-1", start, start.Add(30*time.Minute), 30,
		"CONFIRMED", "25.00", "Trim", from, from)

	mock.ExpectQuery(`FROM bookings b WHERE b.salon_id = \$1 AND b.status IN \(\$2,\$3\) AND b.start_at >= \$4 AND b.start_at < \$5 ORDER BY b.start_at ASC FOR UPDATE`).
		WithArgs("salon-1", "PENDING", "CONFIRMED", from, to).
		WillReturnRows(rows)

	bookings, err := repo.GetActiveBySalonAndPeriod(ctx, "salon-1", from, to)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusConfirmed, bookings[0].Status)
	assert.Equal(t, 25.0, bookings[0].TotalAmount)
	assert.Equal(t, start.Add(30*time.Minute), bookings[0].EndAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusCancelled, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusCancelled)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_ReactivationConflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WillReturnError(&pq.Error{Code: "23P01"})

	err := repo.UpdateStatus(context.Background(), "b-1", domain.StatusConfirmed)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
