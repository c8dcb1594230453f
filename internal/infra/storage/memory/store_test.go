package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
)

func newBooking(salonID string, start time.Time, mins int) *domain.Booking {
	return &domain.Booking{
		SalonID:         salonID,
		ServiceID:       "svc-1",
		ClientID:        "client-1",
		StartAt:         start,
		DurationMinutes: mins,
		Status:          domain.StatusPending,
		ServiceName:     "Haircut",
	}
}

func TestBookingRepository_RejectsOverlapLikeConstraint(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(NewStore())
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newBooking("salon-1", start, 60))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("salon-1", start.Add(30*time.Minute), 30))
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)

	// Другой салон и соседний интервал не конфликтуют
	_, err = repo.Create(ctx, newBooking("salon-2", start, 60))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newBooking("salon-1", start.Add(time.Hour), 30))
	assert.NoError(t, err)
}

func TestBookingRepository_ReactivationConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(NewStore())
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newBooking("salon-1", start, 60))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.StatusCancelled))

	_, err = repo.Create(ctx, newBooking("salon-1", start, 60))
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, first.ID, domain.StatusConfirmed)
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)
}

func TestTxManager_RollbackUndoesWrites(t *testing.T) {
	store := NewStore()
	repo := NewBookingRepository(store)
	tm := NewTxManager()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	var createdID string
	err := tm.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.LockSalon(ctx, "salon-1"))
		b, err := repo.Create(ctx, newBooking("salon-1", start, 60))
		require.NoError(t, err)
		createdID = b.ID
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = repo.GetByID(context.Background(), createdID)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestLockSalon_RequiresTransaction(t *testing.T) {
	repo := NewBookingRepository(NewStore())

	err := repo.LockSalon(context.Background(), "salon-1")

	assert.ErrorIs(t, err, booking.ErrTransaction)
}

func TestLockSalon_SerializesSameSalon(t *testing.T) {
	store := NewStore()
	repo := NewBookingRepository(store)
	tm := NewTxManager()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tm.Do(context.Background(), func(ctx context.Context) error {
				if err := repo.LockSalon(ctx, "salon-1"); err != nil {
					return err
				}
				n := atomic.AddInt32(&inside, 1)
				for {
					seen := atomic.LoadInt32(&maxSeen)
					if n <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}

func TestLockSalon_ReentrantWithinTransaction(t *testing.T) {
	repo := NewBookingRepository(NewStore())
	tm := NewTxManager()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		if err := repo.LockSalon(ctx, "salon-1"); err != nil {
			return err
		}
		return tm.Do(ctx, func(ctx context.Context) error {
			return repo.LockSalon(ctx, "salon-1")
		})
	})

	assert.NoError(t, err)
}

func TestUserRepository_EmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	_, err := repo.Create(ctx, &domain.User{AuthID: "guest_1", Email: "Anna@Example.com", Name: "Anna", Role: domain.RoleClient})
	require.NoError(t, err)

	u, err := repo.GetByEmail(ctx, "anna@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", u.Email)
}

func TestUserRepository_PendingUserHiddenUntilCommit(t *testing.T) {
	store := NewStore()
	repo := NewUserRepository(store)
	tm := NewTxManager()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		created, err := repo.Create(ctx, &domain.User{AuthID: "guest_1", Email: "new@example.com", Role: domain.RoleClient})
		require.NoError(t, err)

		// Своя транзакция видит пользователя, чужие нет
		_, err = repo.GetByEmail(ctx, "new@example.com")
		require.NoError(t, err)
		_, err = repo.GetByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		return nil
	})
	require.NoError(t, err)

	u, err := repo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "guest_1", u.AuthID)
}

func TestUserRepository_EmailLockedUntilRollback(t *testing.T) {
	store := NewStore()
	repo := NewUserRepository(store)
	tm := NewTxManager()
	boom := errors.New("boom")

	created := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- tm.Do(context.Background(), func(ctx context.Context) error {
			_, err := repo.Create(ctx, &domain.User{AuthID: "guest_1", Email: "race@example.com", Role: domain.RoleClient})
			require.NoError(t, err)
			close(created)
			<-release
			return boom
		})
	}()
	<-created

	secondDone := make(chan error, 1)
	var second *domain.User
	go func() {
		secondDone <- tm.Do(context.Background(), func(ctx context.Context) error {
			var err error
			second, err = repo.Create(ctx, &domain.User{AuthID: "guest_2", Email: "race@example.com", Role: domain.RoleClient})
			return err
		})
	}()

	select {
	case <-secondDone:
		t.Fatal("second create must wait for the first transaction")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.ErrorIs(t, <-firstDone, boom)
	require.NoError(t, <-secondDone)

	u, err := repo.GetByEmail(context.Background(), "race@example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, u.ID)
}
