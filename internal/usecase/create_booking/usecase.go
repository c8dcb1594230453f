package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	servicesRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/services"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Попыток транзакции бронирования при гонке за нового клиента
const maxCommitAttempts = 2

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	location *time.Location,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		metrics:      recorder,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в одной транзакции под блокировкой салона.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: salon=%s, service=%s, start=%s, email=%s",
		req.SalonID, req.ServiceID, req.StartAt.Format(time.RFC3339), req.CustomerEmail)

	resp, err := uc.execute(ctx, req)
	uc.record(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID || !service.Active {
		uc.logger.Warn("CreateBooking: service id=%s is not offered by salon id=%s", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Время начала должно быть тем, что мог предложить запрос слотов
	start := req.StartAt.In(uc.location)
	if !availability.IsOnGrid(salon.WorkingHours, start, service.DurationMinutes) {
		uc.logger.Warn("CreateBooking: start %s is not a slot of salon id=%s", start.Format(time.RFC3339), req.SalonID)
		return nil, ErrInvalidTimeSlot
	}

	// 5. Нельзя бронировать прошедшее время
	if start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s is in the past", start.Format(time.RFC3339))
		return nil, ErrInvalidDate
	}

	candidate := availability.NewInterval(start, service.DurationMinutes)
	data := &domain.Booking{
		SalonID:         salon.ID,
		ServiceID:       service.ID,
		StartAt:         candidate.Start,
		EndAt:           candidate.End,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusConfirmed,
		TotalAmount:     service.Price,
		ServiceName:     service.Name,
	}
	customer := &domain.User{
		AuthID: domain.GuestAuthIDPrefix + uuid.NewString(),
		Email:  req.CustomerEmail,
		Name:   strings.TrimSpace(req.CustomerName),
		Phone:  req.CustomerPhone,
		Role:   domain.RoleClient,
	}

	// 6. Атомарная проверка и вставка. Проигравший гонку за нового клиента
	// повторяет транзакцию и видит уже зафиксированного пользователя.
	var created *domain.Booking
	for attempt := 1; ; attempt++ {
		booking, client := *data, *customer
		err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
			var txErr error
			created, txErr = uc.insertBookingIfFree(txCtx, candidate, &booking, &client)
			return txErr
		})
		if errors.Is(err, errCustomerRace) && attempt < maxCommitAttempts {
			uc.logger.Warn("CreateBooking: customer email=%s created concurrently, retrying", customer.Email)
			continue
		}
		*customer = client
		break
	}
	if err != nil {
		if isSlotTaken(err) {
			uc.logger.Warn("CreateBooking: slot %s at salon id=%s is taken: %v", start.Format(time.RFC3339), req.SalonID, err)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%s, salon=%s, client=%s", created.ID, created.SalonID, created.ClientID)

	return toResponse(created, customer), nil
}

// insertBookingIfFree вставляет бронирование, только если интервал свободен.
// Вызывается внутри транзакции READ COMMITTED: блокировка салона сериализует конкурентные
// вставки одного салона, а чтение после нее видит бронирования, зафиксированные до получения блокировки.
func (uc *UseCase) insertBookingIfFree(
	ctx context.Context,
	candidate availability.Interval,
	data *domain.Booking,
	customer *domain.User,
) (*domain.Booking, error) {
	// 6.1. Блокируем салон
	if err := uc.bookingRepo.LockSalon(ctx, data.SalonID); err != nil {
		return nil, storeError("failed to lock salon", err)
	}

	// 6.2. Текущие активные бронирования, способные пересечься с кандидатом
	from := candidate.Start.Add(-domain.MaxServiceDurationMinutes * time.Minute)
	existing, err := uc.bookingRepo.GetActiveBySalonAndPeriod(ctx, data.SalonID, from, candidate.End)
	if err != nil {
		return nil, storeError("failed to get bookings", err)
	}

	// 6.3. Проверка пересечений
	if availability.Conflicts(candidate, availability.ActiveIntervals(existing)) {
		return nil, ErrSlotUnavailable
	}

	// 6.4. Клиент: находим по email или создаем гостя
	client, err := uc.userRepo.GetByEmail(ctx, customer.Email)
	switch {
	case err == nil:
		*customer = *client
	case errors.Is(err, userRepo.ErrUserNotFound):
		client, err = uc.userRepo.Create(ctx, customer)
		switch {
		case errors.Is(err, userRepo.ErrUserExists), errors.Is(err, userRepo.ErrConcurrentUpdate):
			return nil, fmt.Errorf("%w: %v", errCustomerRace, err)
		case err != nil:
			return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
		}
	default:
		return nil, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}

	// 6.5. Создаем бронирование
	data.ClientID = client.ID
	created, err := uc.bookingRepo.Create(ctx, data)
	if err != nil {
		return nil, storeError("failed to create booking", err)
	}

	return created, nil
}

// isSlotTaken конфликт, пойманный проверкой, ограничением БД или конкурентной транзакцией
func isSlotTaken(err error) bool {
	return errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, errCustomerRace) ||
		errors.Is(err, bookingRepo.ErrSlotNotAvailable) ||
		errors.Is(err, bookingRepo.ErrConcurrentUpdate) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}

// storeError сохраняет признак конфликта, остальное становится ErrInternal
func storeError(op string, err error) error {
	if isSlotTaken(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.IncBooking(metrics.ResultCreated)
	case errors.Is(err, ErrSlotUnavailable):
		uc.metrics.IncBooking(metrics.ResultConflict)
	default:
		uc.metrics.IncBooking(metrics.ResultError)
	}
}

func toResponse(b *domain.Booking, customer *domain.User) *Response {
	return &Response{
		ID:              b.ID,
		SalonID:         b.SalonID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		StartAt:         b.StartAt,
		EndAt:           b.EndAt,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		ServiceName:     b.ServiceName,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
