package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	servicesRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// Service сервис управления услугами салона
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса услуг
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListPublic активные услуги салона по имени
func (s *Service) ListPublic(ctx context.Context, salonID string) (*models.ServiceListResponse, error) {
	return s.list(ctx, "ListPublic", salonID, true)
}

// ListOwn все услуги салона владельца, новые первыми
func (s *Service) ListOwn(ctx context.Context, salonID string) (*models.ServiceListResponse, error) {
	return s.list(ctx, "ListOwn", salonID, false)
}

// Create создает услугу в салоне владельца
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s for salon=%s", req.Name, req.SalonID)

	if err := errors.Join(
		validateName(req.Name),
		validateDescription(req.Description),
		validatePrice(req.Price),
		validateDuration(req.DurationMinutes),
	); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		SalonID:         req.SalonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	})
	if err != nil {
		s.logger.Error("Create: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу салона владельца
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s for salon=%s", id, req.SalonID)

	var errs []error
	if req.Name != nil {
		errs = append(errs, validateName(*req.Name))
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	errs = append(errs, validateDescription(req.Description))
	if req.Price != nil {
		errs = append(errs, validatePrice(*req.Price))
	}
	if req.DurationMinutes != nil {
		errs = append(errs, validateDuration(*req.DurationMinutes))
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkOwned(ctx, "Update", id, req.SalonID); err != nil {
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, id, req.ToDomainUpdate())
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete мягко удаляет услугу: она пропадает из каталога, бронирования сохраняются
func (s *Service) Delete(ctx context.Context, id string, salonID string) error {
	s.logger.Info("Delete: deactivating service id=%s for salon=%s", id, salonID)

	if err := s.checkOwned(ctx, "Delete", id, salonID); err != nil {
		return err
	}

	if err := s.serviceRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated service id=%s", id)
	return nil
}

func (s *Service) list(ctx context.Context, op string, salonID string, onlyActive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("%s: fetching services for salon=%s", op, salonID)

	services, err := s.serviceRepo.ListBySalon(ctx, salonID, onlyActive)
	if err != nil {
		s.logger.Error("%s: repository error for salon=%s: %v", op, salonID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return models.FromDomainServiceList(services), nil
}

// checkOwned услуга другого салона неотличима от несуществующей
func (s *Service) checkOwned(ctx context.Context, op string, id string, salonID string) error {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, id)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if service.SalonID != salonID {
		s.logger.Warn("%s: service id=%s belongs to salon=%s, not %s", op, id, service.SalonID, salonID)
		return ErrServiceNotFound
	}
	return nil
}
