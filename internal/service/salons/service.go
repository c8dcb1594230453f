package salons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// Service сервис салонов: карточка по коду и рабочие часы
type Service struct {
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(salonRepo SalonRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetByCode получает салон по публичному коду вместе с активными услугами.
// Код не чувствителен к регистру.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.SalonResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.logger.Info("GetByCode: fetching salon code=%s", code)

	if len(code) != domain.SalonCodeLength {
		s.logger.Warn("GetByCode: malformed code=%s", code)
		return nil, ErrSalonNotFound
	}

	salon, err := s.salonRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetByCode: salon code=%s not found", code)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.ListBySalon(ctx, salon.ID, true)
	if err != nil {
		s.logger.Error("GetByCode: failed to list services for salon=%s: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: GetByCode - list services: %v", ErrInternal, err)
	}
	salon.Services = services

	s.logger.Info("GetByCode: found salon id=%s with %d services", salon.ID, len(services))
	return models.FromDomainSalon(salon), nil
}

// GetWorkingHours получает расписание салона
func (s *Service) GetWorkingHours(ctx context.Context, salonID string) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: fetching hours for salon=%s", salonID)

	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetWorkingHours: salon id=%s not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetWorkingHours: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return &models.WorkingHoursResponse{WorkingHours: salon.WorkingHours}, nil
}

// UpdateWorkingHours заменяет расписание салона.
// open == close помечает выходной; неизвестные дни недели отклоняются.
func (s *Service) UpdateWorkingHours(ctx context.Context, salonID string, hours domain.WorkingHours) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateWorkingHours: updating hours for salon=%s, days=%d", salonID, len(hours))

	if len(hours) == 0 {
		return nil, fmt.Errorf("%w: working hours are empty", ErrInvalidInput)
	}
	if err := hours.Validate(); err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.salonRepo.UpdateWorkingHours(ctx, salonID, hours); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("UpdateWorkingHours: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: successfully updated hours for salon=%s", salonID)
	return &models.WorkingHoursResponse{WorkingHours: hours}, nil
}
