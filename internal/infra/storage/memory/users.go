package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	store *Store
}

// NewUserRepository создает репозиторий пользователей
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.ID == id })
}

// GetByAuthID получает пользователя по ID провайдера идентификации
func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.AuthID == authID })
}

// GetByEmail получает пользователя по email без учета регистра
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return r.find(ctx, func(u *domain.User) bool { return u.Email == email })
}

// Create создает пользователя; email и auth_id уникальны.
// Внутри транзакции email блокируется до ее завершения, а сам пользователь
// не виден другим транзакциям до фиксации.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.Email = domain.NormalizeEmail(u.Email)

	t, inTx := txFromContext(ctx)
	if inTx {
		if err := r.store.lockEmail(ctx, u.Email); err != nil {
			return nil, err
		}
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email || existing.AuthID == u.AuthID {
			return nil, user.ErrUserExists
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now

	stored := *u
	stored.OwnedSalon = nil
	r.store.users[u.ID] = &stored

	id := u.ID
	if inTx {
		r.store.pendingUsers[id] = t
		onCommit(ctx, func() {
			r.store.mu.Lock()
			delete(r.store.pendingUsers, id)
			r.store.mu.Unlock()
		})
	}
	onRollback(ctx, func() {
		r.store.mu.Lock()
		delete(r.store.users, id)
		delete(r.store.pendingUsers, id)
		r.store.mu.Unlock()
	})

	return u, nil
}

// UpdateProfile обновляет auth_id, имя и телефон
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.users[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	for _, existing := range r.store.users {
		if existing.ID != u.ID && existing.AuthID == u.AuthID {
			return user.ErrUserExists
		}
	}

	prev := *stored
	stored.AuthID = u.AuthID
	stored.Name = u.Name
	stored.Phone = u.Phone
	stored.UpdatedAt = time.Now()

	onRollback(ctx, func() {
		r.store.mu.Lock()
		*stored = prev
		r.store.mu.Unlock()
	})

	return nil
}

func (r *UserRepository) find(ctx context.Context, match func(*domain.User) bool) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) && r.store.visibleLocked(ctx, u.ID) {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrUserNotFound
}
