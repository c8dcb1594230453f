package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	servicesRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	location    *time.Location
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс, в котором трактуются дата и рабочие часы. recorder может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	location *time.Location,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		location:    location,
		metrics:     recorder,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Блокировок не берет: результат снимок, занятость перепроверяется при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, service=%s, date=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		if err != nil {
			uc.metrics.IncSlotQuery(metrics.ResultError)
		} else {
			uc.metrics.IncSlotQuery(metrics.ResultOK)
		}
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID || !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is not offered by salon id=%s", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования, которые могут задеть этот день
	day := availability.StartOfDay(req.Date, uc.location)
	from, to := availability.DayWindow(day)

	bookings, err := uc.bookingRepo.GetActiveBySalonAndPeriod(ctx, req.SalonID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	slots := availability.Generate(
		salon.WorkingHours,
		day.Weekday(),
		service.DurationMinutes,
		availability.ActiveIntervals(bookings),
		day,
	)

	uc.logger.Info("GetAvailableSlots: salon=%s, date=%s, found %d slots",
		req.SalonID, day.Format(domain.DateFormat), len(slots))

	return &Response{Slots: slots}, nil
}
