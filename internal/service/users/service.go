package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
)

// Service сервис профилей пользователей
type Service struct {
	userRepo  UserRepository
	salonRepo SalonRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, salonRepo SalonRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		salonRepo: salonRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ResolveIdentity пользователь по ID провайдера вместе с его салоном.
// Используется аутентификацией для каждого защищенного запроса.
func (s *Service) ResolveIdentity(ctx context.Context, authID string) (*domain.User, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: ResolveIdentity - repository error: %v", ErrInternal, err)
	}

	if err := s.attachSalon(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Me профиль текущего пользователя
func (s *Service) Me(ctx context.Context, authID string) (*models.UserResponse, error) {
	s.logger.Info("Me: fetching profile for auth_id=%s", authID)

	user, err := s.ResolveIdentity(ctx, authID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("Me: user auth_id=%s not found", authID)
		} else {
			s.logger.Error("Me: failed for auth_id=%s: %v", authID, err)
		}
		return nil, err
	}

	return models.FromDomainUser(user), nil
}

// SyncUser заводит пользователя провайдера в локальной базе:
// находит по auth_id, иначе по email (привязывая auth_id, например гостя), иначе создает клиента.
func (s *Service) SyncUser(ctx context.Context, req *models.SyncUserRequest) (*models.UserResponse, error) {
	s.logger.Info("SyncUser: auth_id=%s, email=%s", req.AuthID, req.Email)

	if strings.TrimSpace(req.AuthID) == "" {
		return nil, fmt.Errorf("%w: authId is required", ErrInvalidInput)
	}
	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}
	req.Email = email

	var result *domain.User
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. По auth_id
		user, err := s.userRepo.GetByAuthID(txCtx, req.AuthID)
		if err == nil {
			result = user
			return nil
		}
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			return fmt.Errorf("%w: get by auth id: %v", ErrInternal, err)
		}

		// 2. По email: привязываем аккаунт провайдера
		user, err = s.userRepo.GetByEmail(txCtx, req.Email)
		if err == nil {
			user.AuthID = req.AuthID
			if name := strings.TrimSpace(req.Name); name != "" {
				user.Name = name
			}
			if err := s.userRepo.UpdateProfile(txCtx, user); err != nil {
				return fmt.Errorf("%w: link auth id: %v", ErrInternal, err)
			}
			s.logger.Info("SyncUser: linked auth_id=%s to user id=%s", req.AuthID, user.ID)
			result = user
			return nil
		}
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			return fmt.Errorf("%w: get by email: %v", ErrInternal, err)
		}

		// 3. Новый клиент
		user, err = s.userRepo.Create(txCtx, &domain.User{
			AuthID: req.AuthID,
			Email:  req.Email,
			Name:   displayName(req.Name, req.Email),
			Role:   domain.RoleClient,
		})
		if err != nil {
			return fmt.Errorf("%w: create user: %v", ErrInternal, err)
		}
		s.logger.Info("SyncUser: created client id=%s", user.ID)
		result = user
		return nil
	})
	if err != nil {
		s.logger.Error("SyncUser: failed for auth_id=%s: %v", req.AuthID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.attachSalon(ctx, result); err != nil {
		return nil, err
	}
	return models.FromDomainUser(result), nil
}

func (s *Service) attachSalon(ctx context.Context, user *domain.User) error {
	if !user.IsSalonOwner() {
		return nil
	}
	salon, err := s.salonRepo.GetByOwnerID(ctx, user.ID)
	switch {
	case err == nil:
		user.OwnedSalon = salon
	case errors.Is(err, salonRepo.ErrSalonNotFound):
	default:
		return fmt.Errorf("%w: get owned salon: %v", ErrInternal, err)
	}
	return nil
}

// displayName имя по умолчанию: локальная часть email
func displayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
