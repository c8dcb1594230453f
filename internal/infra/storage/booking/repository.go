package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Колонки bookings без join
var bookingColumns = []string{
	"b.id",
	"b.salon_id",
	"b.service_id",
	"b.client_id",
	"b.start_at",
	"b.end_at",
	"b.duration_minutes",
	"b.status",
	"b.total_amount",
	"b.service_name",
	"b.created_at",
	"b.updated_at",
}

// Колонки связанных услуги и клиента
var detailColumns = []string{
	"s.id",
	"s.salon_id",
	"s.name",
	"s.description",
	"s.price",
	"s.duration_minutes",
	"s.active",
	"u.id",
	"u.email",
	"u.name",
	"u.phone",
	"u.role",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSalon берет транзакционную advisory-блокировку на салон.
// Конкурентные создания бронирований одного салона выстраиваются в очередь,
// разные салоны друг друга не блокируют. Блокировка снимается на commit/rollback.
// Очередь работает только в READ COMMITTED: запросы после блокировки видят бронирования,
// зафиксированные предыдущим владельцем. Снимок SERIALIZABLE берется до ожидания блокировки
// и их не видит; тогда пересечение отсекает только ограничение bookings_no_overlap.
func (r *Repository) LockSalon(ctx context.Context, salonID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSalon", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", salonID); err != nil {
		return r.classify("LockSalon - acquire advisory lock", err)
	}
	return nil
}

// Create сохраняет бронирование. ID генерируется, если не задан.
// Пересечение с активным бронированием, пойманное ограничением bookings_no_overlap,
// возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.EndAt.IsZero() {
		booking.EndAt = booking.StartAt.Add(time.Duration(booking.DurationMinutes) * time.Minute)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"salon_id",
			"service_id",
			"client_id",
			"start_at",
			"end_at",
			"duration_minutes",
			"status",
			"total_amount",
			"service_name",
		).
		Values(
			booking.ID,
			booking.SalonID,
			booking.ServiceID,
			booking.ClientID,
			booking.StartAt,
			booking.EndAt,
			booking.DurationMinutes,
			booking.Status,
			booking.TotalAmount,
			booking.ServiceName,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return nil, r.classify("Create - execute insert", err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с услугой и клиентом
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailedSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanDetailedBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveBySalonAndPeriod возвращает PENDING/CONFIRMED бронирования салона,
// начинающиеся в [from, to), по возрастанию времени.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetActiveBySalonAndPeriod(ctx context.Context, salonID string, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.salon_id": salonID}).
		Where(squirrel.Eq{"b.status": domain.ActiveStatusStrings()}).
		Where(squirrel.GtOrEq{"b.start_at": from}).
		Where(squirrel.Lt{"b.start_at": to}).
		OrderBy("b.start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySalonAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.classify("GetActiveBySalonAndPeriod - execute query", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveBySalonAndPeriod - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySalonAndPeriod - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetBySalon получает бронирования салона с услугой и клиентом, новые сначала
func (r *Repository) GetBySalon(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailedSelect().
		Where(squirrel.Eq{"b.salon_id": filter.SalonID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.start_at": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.ActiveStatusStrings()})
	}

	query, args, err := selectBuilder.OrderBy("b.start_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.classify("GetBySalon - execute query", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanDetailedBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySalon - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования. Бронирования никогда не удаляются.
// Возврат отменённого бронирования в активный статус может упереться в
// bookings_no_overlap, если время уже занято: тогда ErrSlotNotAvailable.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return r.classify("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// classify переводит ошибки PostgreSQL в ошибки репозитория
func (r *Repository) classify(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
	case pgerrors.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

func detailedSelect() squirrel.SelectBuilder {
	columns := make([]string, 0, len(bookingColumns)+len(detailColumns))
	columns = append(columns, bookingColumns...)
	columns = append(columns, detailColumns...)

	return psqlbuilder.Select(columns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Join("users u ON u.id = b.client_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.SalonID,
		&b.ServiceID,
		&b.ClientID,
		&b.StartAt,
		&b.EndAt,
		&b.DurationMinutes,
		&b.Status,
		&b.TotalAmount,
		&b.ServiceName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanDetailedBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b       domain.Booking
		service domain.Service
		client  domain.User
	)
	err := row.Scan(
		&b.ID,
		&b.SalonID,
		&b.ServiceID,
		&b.ClientID,
		&b.StartAt,
		&b.EndAt,
		&b.DurationMinutes,
		&b.Status,
		&b.TotalAmount,
		&b.ServiceName,
		&b.CreatedAt,
		&b.UpdatedAt,
		&service.ID,
		&service.SalonID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.DurationMinutes,
		&service.Active,
		&client.ID,
		&client.Email,
		&client.Name,
		&client.Phone,
		&client.Role,
	)
	if err != nil {
		return nil, err
	}
	b.Service = &service
	b.Client = &client
	return &b, nil
}
