package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
	now   func() time.Time
}

// NewBookingRepository создает репозиторий бронирований
func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store, now: time.Now}
}

// LockSalon блокирует салон до конца текущей транзакции
func (r *BookingRepository) LockSalon(ctx context.Context, salonID string) error {
	if err := r.store.lockSalon(ctx, salonID); err != nil {
		return fmt.Errorf("%w: LockSalon: %v", booking.ErrTransaction, err)
	}
	return nil
}

// Create сохраняет бронирование, повторяя ограничение bookings_no_overlap
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.EndAt.IsZero() {
		b.EndAt = b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if b.Status.IsActive() && r.overlapsActiveLocked(b.SalonID, "", availability.BookingInterval(b)) {
		return nil, booking.ErrSlotNotAvailable
	}

	now := r.now()
	b.CreatedAt, b.UpdatedAt = now, now
	stored := *b
	stored.Service, stored.Client = nil, nil
	r.store.bookings[b.ID] = &stored

	id := b.ID
	onRollback(ctx, func() {
		r.store.mu.Lock()
		delete(r.store.bookings, id)
		r.store.mu.Unlock()
	})

	return b, nil
}

// GetByID получает бронирование вместе с услугой и клиентом
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return r.detailedLocked(b), nil
}

// GetActiveBySalonAndPeriod активные бронирования салона, начинающиеся в [from, to)
func (r *BookingRepository) GetActiveBySalonAndPeriod(ctx context.Context, salonID string, from, to time.Time) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.SalonID != salonID || !b.Status.IsActive() {
			continue
		}
		if b.StartAt.Before(from) || !b.StartAt.Before(to) {
			continue
		}
		c := *b
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

// GetBySalon бронирования салона по фильтру, новые первыми
func (r *BookingRepository) GetBySalon(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.SalonID != filter.SalonID {
			continue
		}
		if filter.OnlyActive && !b.Status.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.From != nil && b.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		result = append(result, r.detailedLocked(b))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.After(result[j].StartAt) })
	return result, nil
}

// UpdateStatus меняет статус. Повторная активация поверх занятого интервала дает ErrSlotNotAvailable.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if status.IsActive() && !b.Status.IsActive() &&
		r.overlapsActiveLocked(b.SalonID, b.ID, availability.BookingInterval(b)) {
		return booking.ErrSlotNotAvailable
	}

	prevStatus, prevUpdated := b.Status, b.UpdatedAt
	b.Status = status
	b.UpdatedAt = r.now()

	onRollback(ctx, func() {
		r.store.mu.Lock()
		b.Status, b.UpdatedAt = prevStatus, prevUpdated
		r.store.mu.Unlock()
	})

	return nil
}

func (r *BookingRepository) overlapsActiveLocked(salonID, excludeID string, candidate availability.Interval) bool {
	existing := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.SalonID == salonID && b.ID != excludeID {
			existing = append(existing, b)
		}
	}
	return availability.Conflicts(candidate, availability.ActiveIntervals(existing))
}

func (r *BookingRepository) detailedLocked(b *domain.Booking) *domain.Booking {
	c := *b
	if svc, ok := r.store.services[b.ServiceID]; ok {
		s := *svc
		c.Service = &s
	}
	if u, ok := r.store.users[b.ClientID]; ok {
		client := *u
		c.Client = &client
	}
	return &c
}
