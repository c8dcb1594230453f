package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Service сервис для работы с бронированиями салона
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование салона по ID.
// Бронирование другого салона неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, id string, salonID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for salon=%s", id, salonID)

	booking, err := s.getOwned(ctx, "GetByID", id, salonID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetSalonBookings получает бронирования салона, новые первыми.
// Фильтры периода и статуса необязательны.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%s", req.SalonID)
	if req.From != nil {
		logMsg += fmt.Sprintf(", from=%s", req.From.Format(domain.DateFormat))
	}
	if req.To != nil {
		logMsg += fmt.Sprintf(", to=%s", req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("GetSalonBookings: empty period for salon=%s", req.SalonID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalon(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%s", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования салона.
// Допустим переход из любого статуса в любой. Возврат в PENDING/CONFIRMED поверх
// занятого интервала отклоняется с ErrSlotUnavailable.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by salon=%s", bookingID, req.Status, req.SalonID)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Проверяем, что бронирование принадлежит салону
		if _, err := s.getOwned(txCtx, "UpdateStatus", bookingID, req.SalonID); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable),
				errors.Is(err, bookingRepo.ErrConcurrentUpdate):
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		booking, err := s.getOwned(txCtx, "UpdateStatus", bookingID, req.SalonID)
		if err != nil {
			return err
		}
		updated = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInternal):
			return nil, err
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, txmanager.ErrSerializationFailure):
			s.logger.Warn("UpdateStatus: booking id=%s cannot be reactivated, slot taken", bookingID)
			return nil, ErrSlotUnavailable
		}
		s.logger.Error("UpdateStatus: transaction error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

// getOwned получает бронирование и проверяет, что оно принадлежит салону
func (s *Service) getOwned(ctx context.Context, op string, id string, salonID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.SalonID != salonID {
		s.logger.Warn("%s: booking id=%s belongs to salon=%s, not %s", op, id, booking.SalonID, salonID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
