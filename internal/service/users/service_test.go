package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fixture struct {
	svc    *Service
	users  *memory.UserRepository
	salons *memory.SalonRepository
}

func newFixture() *fixture {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	salons := memory.NewSalonRepository(store)
	return &fixture{
		svc:    NewService(users, salons, memory.NewTxManager(), logger.Nop()),
		users:  users,
		salons: salons,
	}
}

func TestSyncUser_CreatesClientWithDefaultName(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.SyncUser(context.Background(), &models.SyncUserRequest{AuthID: "auth-1", Email: "maria@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "maria", resp.Name)
	assert.Equal(t, string(domain.RoleClient), resp.Role)
}

func TestSyncUser_LinksGuestByEmail(t *testing.T) {
	f := newFixture()
	guest, err := f.users.Create(context.Background(), &domain.User{
		AuthID: "guest_123", Email: "maria@example.com", Name: "Maria", Role: domain.RoleClient,
	})
	require.NoError(t, err)

	resp, err := f.svc.SyncUser(context.Background(), &models.SyncUserRequest{AuthID: "auth-1", Email: "Maria@example.com"})

	require.NoError(t, err)
	assert.Equal(t, guest.ID, resp.ID)
	linked, err := f.users.GetByAuthID(context.Background(), "auth-1")
	require.NoError(t, err)
	assert.False(t, linked.IsGuest())
}

func TestSyncUser_StoresBareAddressOfDisplayNameEmail(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.SyncUser(context.Background(), &models.SyncUserRequest{AuthID: "auth-1", Email: "Bob <Bob@Example.com>"})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", resp.Email)
	assert.Equal(t, "bob", resp.Name)
	stored, err := f.users.GetByAuthID(context.Background(), "auth-1")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", stored.Email)
}

func TestSyncUser_Idempotent(t *testing.T) {
	f := newFixture()
	req := &models.SyncUserRequest{AuthID: "auth-1", Email: "maria@example.com", Name: "Maria"}

	first, err := f.svc.SyncUser(context.Background(), req)
	require.NoError(t, err)
	second, err := f.svc.SyncUser(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestMe_OwnerWithSalon(t *testing.T) {
	f := newFixture()
	owner, err := f.users.Create(context.Background(), &domain.User{
		AuthID: "auth-owner", Email: "owner@example.com", Name: "Olga", Role: domain.RoleSalonOwner,
	})
	require.NoError(t, err)
	_, err = f.salons.Create(context.Background(), &domain.Salon{Name: "Glow", Code: "GLOW01", OwnerID: owner.ID})
	require.NoError(t, err)

	resp, err := f.svc.Me(context.Background(), "auth-owner")

	require.NoError(t, err)
	require.NotNil(t, resp.Salon)
	assert.Equal(t, "GLOW01", resp.Salon.Code)
}

func TestMe_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Me(context.Background(), "unknown")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSyncUser_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SyncUser(context.Background(), &models.SyncUserRequest{Email: "maria@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
