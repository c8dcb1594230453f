package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var salonColumns = []string{
	"id",
	"name",
	"code",
	"email",
	"phone",
	"owner_id",
	"working_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий салонов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Salon, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает салон по публичному коду (код хранится в верхнем регистре)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Salon, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": code})
}

// GetByOwnerID получает салон владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error) {
	return r.getOne(ctx, "GetByOwnerID", squirrel.Eq{"owner_id": ownerID})
}

// Create создает салон. Занятый код возвращается как ErrCodeTaken.
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if salon.ID == "" {
		salon.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("salons").
		Columns("id", "name", "code", "email", "phone", "owner_id", "working_hours").
		Values(salon.ID, salon.Name, salon.Code, salon.Email, salon.Phone, salon.OwnerID, salon.WorkingHours).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&salon.CreatedAt, &salon.UpdatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) && pgerrors.ConstraintName(err) == "salons_code_key" {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return salon, nil
}

// UpdateWorkingHours заменяет расписание салона
func (r *Repository) UpdateWorkingHours(ctx context.Context, id string, hours domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("working_hours", hours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkingHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkingHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkingHours - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var s domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Code,
		&s.Email,
		&s.Phone,
		&s.OwnerID,
		&s.WorkingHours,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan salon: %v", ErrScanRow, op, err)
	}

	return &s, nil
}
