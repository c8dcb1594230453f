package register_owner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// Попыток подобрать свободный код салона
const maxCodeAttempts = 10

// UseCase use case регистрации владельца салона
type UseCase struct {
	userRepo     UserRepository
	salonRepo    SalonRepository
	authProvider AuthProvider
	txManager    TransactionManager
	generateCode CodeGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	salonRepo SalonRepository,
	authProvider AuthProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		salonRepo:    salonRepo,
		authProvider: authProvider,
		txManager:    txManager,
		generateCode: RandomCode,
		logger:       logger,
	}
}

// Execute регистрирует пользователя у провайдера, затем в одной транзакции
// создает владельца и салон с расписанием по умолчанию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterOwner: email=%s, salon=%s", req.Email, req.SalonName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RegisterOwner: validation failed: %v", err)
		return nil, err
	}
	email := domain.NormalizeEmail(req.Email)

	// 2. Email не должен быть занят
	_, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		uc.logger.Warn("RegisterOwner: email=%s already registered", email)
		return nil, ErrUserAlreadyExists
	case !errors.Is(err, userRepo.ErrUserNotFound):
		uc.logger.Error("RegisterOwner: failed to check email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrInternal, err)
	}

	// 3. Пользователь провайдера: создаем или находим уже зарегистрированного
	authUser, err := uc.authProvider.CreateUser(ctx, email, req.Password, map[string]interface{}{
		"name": strings.TrimSpace(req.Name),
	})
	if errors.Is(err, supabase.ErrUserAlreadyRegistered) {
		uc.logger.Info("RegisterOwner: email=%s already known to auth provider, looking up", email)
		authUser, err = uc.authProvider.FindUserByEmail(ctx, email)
	}
	if err != nil {
		uc.logger.Error("RegisterOwner: auth provider failed for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: auth provider: %v", ErrInternal, err)
	}

	// 4. Владелец и салон в одной транзакции
	resp := &Response{}
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		owner, err := uc.userRepo.Create(txCtx, &domain.User{
			AuthID: authUser.ID,
			Email:  email,
			Name:   strings.TrimSpace(req.Name),
			Phone:  req.Phone,
			Role:   domain.RoleSalonOwner,
		})
		if err != nil {
			if errors.Is(err, userRepo.ErrUserExists) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("%w: failed to create user: %v", ErrInternal, err)
		}

		code, err := uc.freeCode(txCtx)
		if err != nil {
			return err
		}

		salon, err := uc.salonRepo.Create(txCtx, &domain.Salon{
			Name:         strings.TrimSpace(req.SalonName),
			Code:         code,
			Email:        email,
			Phone:        ptr.Deref(req.Phone, ""),
			OwnerID:      owner.ID,
			WorkingHours: domain.DefaultWorkingHours(),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create salon: %v", ErrInternal, err)
		}

		owner.OwnedSalon = salon
		resp.User = owner
		resp.Salon = salon
		return nil
	})
	if err != nil {
		uc.logger.Error("RegisterOwner: failed for email=%s: %v", email, err)
		if errors.Is(err, ErrUserAlreadyExists) || errors.Is(err, ErrCodeGeneration) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("RegisterOwner: created owner id=%s, salon id=%s, code=%s", resp.User.ID, resp.Salon.ID, resp.Salon.Code)
	return resp, nil
}

// freeCode подбирает код, которого еще нет у салонов
func (uc *UseCase) freeCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := uc.generateCode()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCodeGeneration, err)
		}

		_, err = uc.salonRepo.GetByCode(ctx, code)
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: failed to check code: %v", ErrInternal, err)
		}
		uc.logger.Warn("RegisterOwner: salon code %s is taken, retrying", code)
	}
	return "", ErrCodeGeneration
}
