package register_owner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockAuthProvider struct {
	mock.Mock
}

func (m *mockAuthProvider) CreateUser(ctx context.Context, email, password string, metadata map[string]interface{}) (*supabase.AuthUser, error) {
	args := m.Called(ctx, email, password, metadata)
	if u := args.Get(0); u != nil {
		return u.(*supabase.AuthUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthProvider) FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*supabase.AuthUser), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	uc     *UseCase
	auth   *mockAuthProvider
	users  *memory.UserRepository
	salons *memory.SalonRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	salons := memory.NewSalonRepository(store)
	auth := &mockAuthProvider{}
	t.Cleanup(func() { auth.AssertExpectations(t) })

	return &fixture{
		uc:     NewUseCase(users, salons, auth, memory.NewTxManager(), logger.Nop()),
		auth:   auth,
		users:  users,
		salons: salons,
	}
}

func validRequest() *Request {
	return &Request{
		Email:     "Owner@Example.com",
		Password:  "secret1",
		Name:      "Olga",
		SalonName: "Glow",
	}
}

func TestExecute_CreatesOwnerAndSalon(t *testing.T) {
	f := newFixture(t)
	f.auth.On("CreateUser", mock.Anything, "owner@example.com", "secret1", mock.Anything).
		Return(&supabase.AuthUser{ID: "auth-1", Email: "owner@example.com"}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.RoleSalonOwner, resp.User.Role)
	assert.Equal(t, "auth-1", resp.User.AuthID)
	assert.Equal(t, resp.User.ID, resp.Salon.OwnerID)
	assert.Len(t, resp.Salon.Code, domain.SalonCodeLength)
	assert.Equal(t, domain.DefaultWorkingHours(), resp.Salon.WorkingHours)

	stored, err := f.salons.GetByCode(context.Background(), resp.Salon.Code)
	require.NoError(t, err)
	assert.Equal(t, "Glow", stored.Name)
}

func TestExecute_EmailTaken(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Create(context.Background(), &domain.User{AuthID: "a", Email: "owner@example.com", Name: "X", Role: domain.RoleClient})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestExecute_AlreadyRegisteredAtProvider(t *testing.T) {
	f := newFixture(t)
	f.auth.On("CreateUser", mock.Anything, "owner@example.com", "secret1", mock.Anything).
		Return(nil, supabase.ErrUserAlreadyRegistered)
	f.auth.On("FindUserByEmail", mock.Anything, "owner@example.com").
		Return(&supabase.AuthUser{ID: "auth-9"}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "auth-9", resp.User.AuthID)
}

func TestExecute_RetriesTakenCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.salons.Create(context.Background(), &domain.Salon{Name: "Old", Code: "AAAAAA", OwnerID: "x"})
	require.NoError(t, err)

	codes := []string{"AAAAAA", "BBBBBB"}
	f.uc.generateCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
	f.auth.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&supabase.AuthUser{ID: "auth-1"}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", resp.Salon.Code)
}

func TestExecute_CodeExhaustionRollsBackUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.salons.Create(context.Background(), &domain.Salon{Name: "Old", Code: "AAAAAA", OwnerID: "x"})
	require.NoError(t, err)

	f.uc.generateCode = func() (string, error) { return "AAAAAA", nil }
	f.auth.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&supabase.AuthUser{ID: "auth-1"}, nil)

	_, err = f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCodeGeneration)
	_, err = f.users.GetByEmail(context.Background(), "owner@example.com")
	assert.Error(t, err)
}

func TestRandomCode(t *testing.T) {
	code, err := RandomCode()

	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Password = "123"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
