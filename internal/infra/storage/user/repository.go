package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"auth_id",
	"email",
	"name",
	"phone",
	"role",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByAuthID получает пользователя по ID во внешнем провайдере идентификации
func (r *Repository) GetByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	return r.getOne(ctx, "GetByAuthID", squirrel.Eq{"auth_id": authID})
}

// GetByEmail получает пользователя по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": domain.NormalizeEmail(email)})
}

// Create создает пользователя. Email приводится к нижнему регистру.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = domain.NormalizeEmail(user.Email)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "auth_id", "email", "name", "phone", "role").
		Values(user.ID, user.AuthID, user.Email, user.Name, user.Phone, string(user.Role)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, ErrUserExists
		case pgerrors.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrConcurrentUpdate, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return user, nil
}

// UpdateProfile обновляет auth_id, имя и телефон пользователя.
// Используется при синхронизации гостя с аккаунтом провайдера.
func (r *Repository) UpdateProfile(ctx context.Context, user *domain.User) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("auth_id", user.AuthID).
		Set("name", user.Name).
		Set("phone", user.Phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("%w: UpdateProfile - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		u     domain.User
		phone sql.NullString
		role  string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.AuthID,
		&u.Email,
		&u.Name,
		&phone,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}
	if phone.Valid && strings.TrimSpace(phone.String) != "" {
		u.Phone = &phone.String
	}
	u.Role = domain.Role(role)

	return &u, nil
}
