// Package memory хранилище в памяти процесса с теми же контрактами, что и
// PostgreSQL-репозитории. Используется в тестах и при storage.driver = "memory".
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Store общее состояние всех репозиториев
type Store struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	salons   map[string]*domain.Salon
	services map[string]*domain.Service
	bookings map[string]*domain.Booking

	// Пользователи, созданные незавершенной транзакцией: id -> транзакция-владелец
	pendingUsers map[string]*tx

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		salons:       make(map[string]*domain.Salon),
		services:     make(map[string]*domain.Service),
		bookings:     make(map[string]*domain.Booking),
		pendingUsers: make(map[string]*tx),
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

type txKey struct{}

// tx журналы отката и фиксации, удерживаемые блокировки
type tx struct {
	undo   []func()
	commit []func()
	locked []*sync.Mutex
}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// onRollback регистрирует действие отката, если вызов идет внутри транзакции
func onRollback(ctx context.Context, fn func()) {
	if t, ok := txFromContext(ctx); ok {
		t.undo = append(t.undo, fn)
	}
}

// onCommit регистрирует действие после успешной фиксации
func onCommit(ctx context.Context, fn func()) {
	if t, ok := txFromContext(ctx); ok {
		t.commit = append(t.commit, fn)
	}
}

// TxManager транзакции хранилища в памяти.
// Откат выполняет журнал undo в обратном порядке, блокировки снимаются
// при завершении транзакции.
type TxManager struct{}

// NewTxManager создает менеджер транзакций
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов работает во внешней транзакции
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	t := &tx{}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			t.release()
			panic(p)
		}
		if err != nil {
			t.rollback()
		} else {
			t.committed()
		}
		t.release()
	}()

	return fn(context.WithValue(ctx, txKey{}, t))
}

func (t *tx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.commit = nil
}

func (t *tx) committed() {
	for _, fn := range t.commit {
		fn()
	}
	t.commit = nil
	t.undo = nil
}

func (t *tx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.locked[i].Unlock()
	}
	t.locked = nil
}

// lockSalon берет блокировку салона до конца транзакции
func (s *Store) lockSalon(ctx context.Context, salonID string) error {
	return s.lock(ctx, "salon:"+salonID)
}

// lockEmail берет блокировку email до конца транзакции, как уникальный индекс
// users.email в PostgreSQL держит конкурентную вставку до фиксации первой
func (s *Store) lockEmail(ctx context.Context, email string) error {
	return s.lock(ctx, "email:"+email)
}

// lock берет именованную блокировку до конца транзакции. Повторный вызов в той же транзакции не блокирует.
func (s *Store) lock(ctx context.Context, key string) error {
	t, ok := txFromContext(ctx)
	if !ok {
		return fmt.Errorf("memory: lock %s outside transaction", key)
	}

	l := s.keyLock(key)
	for _, held := range t.locked {
		if held == l {
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		l.Lock()
		close(done)
	}()

	select {
	case <-done:
		t.locked = append(t.locked, l)
		return nil
	case <-ctx.Done():
		// Блокировку все равно получим; отпускаем сразу, как только она освободится
		go func() {
			<-done
			l.Unlock()
		}()
		return ctx.Err()
	}
}

// visibleLocked пользователь виден вызывающему: зафиксирован или создан его же транзакцией.
// Вызывать под s.mu.
func (s *Store) visibleLocked(ctx context.Context, userID string) bool {
	owner, pending := s.pendingUsers[userID]
	if !pending {
		return true
	}
	t, ok := txFromContext(ctx)
	return ok && t == owner
}
