package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

var (
	bookingRowColumns = []string{
		"id", "salon_id", "service_id", "client_id", "start_at", "end_at", "duration_minutes",
		"status", "total_amount", "service_name", "created_at", "updated_at",
	}
	userRowColumns = []string{"id", "auth_id", "email", "name", "phone", "role", "created_at", "updated_at"}
)

// newPostgresUseCase бронирования и пользователи идут через sqlmock, салон и услуга из памяти
func newPostgresUseCase(t *testing.T, f *fixture) (*UseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	uc := NewUseCase(
		bookingRepo.NewRepository(wrapped),
		memory.NewSalonRepository(f.store),
		memory.NewServiceRepository(f.store),
		userRepo.NewRepository(wrapped),
		txmanager.NewTransactionManager(wrapped),
		time.UTC,
		f.counter,
		logger.Nop(),
	)
	uc.timeProvider = fixedTime{t: monday.Add(-24 * time.Hour)}
	return uc, mock
}

// expectCustomerLookup блокировка салона, пустой список бронирований и поиск клиента
func expectCustomerLookup(mock sqlmock.Sqlmock, existing *sqlmock.Rows) {
	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM bookings b").WillReturnRows(sqlmock.NewRows(bookingRowColumns))
	mock.ExpectQuery("FROM users").WillReturnRows(existing)
}

func TestExecute_Postgres_CustomerInsertSerializationFailure(t *testing.T) {
	f := newFixture(t)
	uc, mock := newPostgresUseCase(t, f)

	for i := 0; i < maxCommitAttempts; i++ {
		expectCustomerLookup(mock, sqlmock.NewRows(userRowColumns))
		mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()
	}

	_, err := uc.Execute(context.Background(), f.request(monday.Add(10*time.Hour), "new@example.com"))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.counter.get("conflict"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Postgres_RetriesWithCommittedCustomer(t *testing.T) {
	f := newFixture(t)
	uc, mock := newPostgresUseCase(t, f)
	now := time.Now()

	// Первая попытка: email уже занят конкурентной транзакцией
	expectCustomerLookup(mock, sqlmock.NewRows(userRowColumns))
	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	// Вторая попытка видит зафиксированного клиента
	expectCustomerLookup(mock, sqlmock.NewRows(userRowColumns).
		AddRow("client-1", "guest_1", "new@example.com", "Anna", nil, "CLIENT", now, now))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), f.request(monday.Add(10*time.Hour), "new@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "client-1", resp.ClientID)
	assert.Equal(t, "new@example.com", resp.CustomerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// gatedBookings останавливает вставку бронирования выбранного салона,
// пока тест не откроет gate; затем вставляет или возвращает failWith
type gatedBookings struct {
	*memory.BookingRepository
	salonID  string
	entered  chan struct{}
	gate     chan struct{}
	failWith error
}

func (r *gatedBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if b.SalonID == r.salonID {
		close(r.entered)
		<-r.gate
		if r.failWith != nil {
			return nil, r.failWith
		}
	}
	return r.BookingRepository.Create(ctx, b)
}

type twoSalons struct {
	*fixture
	other        *domain.Salon
	otherService *domain.Service
}

func newTwoSalons(t *testing.T) *twoSalons {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	other, err := memory.NewSalonRepository(f.store).Create(ctx, &domain.Salon{
		Name:         "Shine",
		Code:         "SHINE1",
		OwnerID:      "owner-2",
		WorkingHours: domain.WorkingHours{},
	})
	require.NoError(t, err)
	service, err := memory.NewServiceRepository(f.store).Create(ctx, &domain.Service{
		SalonID:         other.ID,
		Name:            "Manicure",
		Price:           30,
		DurationMinutes: 60,
		Active:          true,
	})
	require.NoError(t, err)

	return &twoSalons{fixture: f, other: other, otherService: service}
}

func (s *twoSalons) useCase(bookings BookingRepository) *UseCase {
	uc := NewUseCase(bookings, memory.NewSalonRepository(s.store), memory.NewServiceRepository(s.store),
		s.users, memory.NewTxManager(), time.UTC, nil, logger.Nop())
	uc.timeProvider = fixedTime{t: monday.Add(-24 * time.Hour)}
	return uc
}

// sameEmailAtTwoSalons первая транзакция создает клиента и ждет на вставке бронирования,
// вторая в это время бронирует другой салон тем же email
func sameEmailAtTwoSalons(t *testing.T, failFirst error) (s *twoSalons, first *Response, firstErr error, second *Response, secondErr error) {
	t.Helper()
	s = newTwoSalons(t)
	gated := &gatedBookings{
		BookingRepository: s.bookings,
		salonID:           s.salon.ID,
		entered:           make(chan struct{}),
		gate:              make(chan struct{}),
		failWith:          failFirst,
	}
	start := monday.Add(10 * time.Hour)
	const email = "shared@example.com"

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		first, firstErr = s.useCase(gated).Execute(context.Background(), s.request(start, email))
	}()
	<-gated.entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		second, secondErr = s.useCase(s.bookings).Execute(context.Background(), &Request{
			SalonID:       s.other.ID,
			ServiceID:     s.otherService.ID,
			StartAt:       start,
			CustomerName:  "Anna",
			CustomerEmail: email,
		})
	}()

	// Клиент первой транзакции еще не зафиксирован и не виден снаружи
	_, err := s.users.GetByEmail(context.Background(), email)
	assert.ErrorIs(t, err, userRepo.ErrUserNotFound)

	close(gated.gate)
	<-firstDone
	<-secondDone
	return s, first, firstErr, second, secondErr
}

func TestExecute_SharedNewEmail_FirstRollsBack(t *testing.T) {
	s, _, firstErr, second, secondErr := sameEmailAtTwoSalons(t, errors.New("disk full"))

	assert.ErrorIs(t, firstErr, ErrInternal)
	require.NoError(t, secondErr)

	client, err := s.users.GetByID(context.Background(), second.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "shared@example.com", client.Email)

	booking, err := s.bookings.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.NotNil(t, booking.Client)
	assert.Equal(t, client.ID, booking.Client.ID)
}

func TestExecute_SharedNewEmail_BothCommitOneCustomer(t *testing.T) {
	s, first, firstErr, second, secondErr := sameEmailAtTwoSalons(t, nil)

	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, first.ClientID, second.ClientID)

	client, err := s.users.GetByEmail(context.Background(), "shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, client.ID)
}
