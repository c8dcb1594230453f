package register_owner

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const minPasswordLength = 6

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}
	req.Email = email

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SalonName) == "" {
		return fmt.Errorf("%w: salonName is required", ErrInvalidInput)
	}

	return nil
}
