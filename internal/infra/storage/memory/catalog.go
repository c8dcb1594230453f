package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/services"
)

// SalonRepository салоны в памяти
type SalonRepository struct {
	store *Store
}

// NewSalonRepository создает репозиторий салонов
func NewSalonRepository(store *Store) *SalonRepository {
	return &SalonRepository{store: store}
}

// GetByID получает салон по ID
func (r *SalonRepository) GetByID(ctx context.Context, id string) (*domain.Salon, error) {
	return r.find(func(s *domain.Salon) bool { return s.ID == id })
}

// GetByCode получает салон по коду
func (r *SalonRepository) GetByCode(ctx context.Context, code string) (*domain.Salon, error) {
	return r.find(func(s *domain.Salon) bool { return s.Code == code })
}

// GetByOwnerID получает салон владельца
func (r *SalonRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error) {
	return r.find(func(s *domain.Salon) bool { return s.OwnerID == ownerID })
}

// Create создает салон
func (r *SalonRepository) Create(ctx context.Context, s *domain.Salon) (*domain.Salon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.salons {
		if existing.Code == s.Code {
			return nil, salon.ErrCodeTaken
		}
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now

	stored := *s
	stored.WorkingHours = copyHours(s.WorkingHours)
	stored.Services = nil
	r.store.salons[s.ID] = &stored

	id := s.ID
	onRollback(ctx, func() {
		r.store.mu.Lock()
		delete(r.store.salons, id)
		r.store.mu.Unlock()
	})

	return s, nil
}

// UpdateWorkingHours заменяет расписание салона
func (r *SalonRepository) UpdateWorkingHours(ctx context.Context, id string, hours domain.WorkingHours) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.salons[id]
	if !ok {
		return salon.ErrSalonNotFound
	}

	prev, prevUpdated := s.WorkingHours, s.UpdatedAt
	s.WorkingHours = copyHours(hours)
	s.UpdatedAt = time.Now()

	onRollback(ctx, func() {
		r.store.mu.Lock()
		s.WorkingHours, s.UpdatedAt = prev, prevUpdated
		r.store.mu.Unlock()
	})

	return nil
}

func (r *SalonRepository) find(match func(*domain.Salon) bool) (*domain.Salon, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.salons {
		if match(s) {
			c := *s
			c.WorkingHours = copyHours(s.WorkingHours)
			return &c, nil
		}
	}
	return nil, salon.ErrSalonNotFound
}

func copyHours(h domain.WorkingHours) domain.WorkingHours {
	out := make(domain.WorkingHours, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// ServiceRepository услуги в памяти
type ServiceRepository struct {
	store *Store
}

// NewServiceRepository создает репозиторий услуг
func NewServiceRepository(store *Store) *ServiceRepository {
	return &ServiceRepository{store: store}
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.services[id]
	if !ok {
		return nil, services.ErrServiceNotFound
	}
	c := *s
	return &c, nil
}

// ListBySalon услуги салона: активные по имени или все, новые первыми
func (r *ServiceRepository) ListBySalon(ctx context.Context, salonID string, onlyActive bool) ([]*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Service, 0)
	for _, s := range r.store.services {
		if s.SalonID != salonID || (onlyActive && !s.Active) {
			continue
		}
		c := *s
		result = append(result, &c)
	}

	if onlyActive {
		sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	} else {
		sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	}
	return result, nil
}

// Create создает услугу
func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now

	stored := *s
	r.store.services[s.ID] = &stored

	id := s.ID
	onRollback(ctx, func() {
		r.store.mu.Lock()
		delete(r.store.services, id)
		r.store.mu.Unlock()
	})

	return s, nil
}

// Update частично обновляет услугу
func (r *ServiceRepository) Update(ctx context.Context, id string, upd domain.ServiceUpdate) (*domain.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.services[id]
	if !ok {
		return nil, services.ErrServiceNotFound
	}
	if upd.IsEmpty() {
		c := *s
		return &c, nil
	}

	prev := *s
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.Description != nil {
		d := *upd.Description
		s.Description = &d
	}
	if upd.Price != nil {
		s.Price = *upd.Price
	}
	if upd.DurationMinutes != nil {
		s.DurationMinutes = *upd.DurationMinutes
	}
	if upd.Active != nil {
		s.Active = *upd.Active
	}
	s.UpdatedAt = time.Now()

	onRollback(ctx, func() {
		r.store.mu.Lock()
		*s = prev
		r.store.mu.Unlock()
	})

	c := *s
	return &c, nil
}

// SoftDelete деактивирует услугу
func (r *ServiceRepository) SoftDelete(ctx context.Context, id string) error {
	inactive := false
	_, err := r.Update(ctx, id, domain.ServiceUpdate{Active: &inactive})
	return err
}
