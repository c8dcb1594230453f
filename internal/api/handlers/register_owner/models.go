package register_owner

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/users/models"
	registerOwner "github.com/m04kA/SMC-SalonBooking/internal/usecase/register_owner"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	SalonName string  `json:"salonName"`
}

// RegisterResponse HTTP response model
type RegisterResponse struct {
	Message string               `json:"message"`
	User    *models.UserResponse `json:"user"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RegisterRequest) ToUseCaseRequest() *registerOwner.Request {
	return &registerOwner.Request{
		Email:     r.Email,
		Password:  r.Password,
		Name:      r.Name,
		Phone:     r.Phone,
		SalonName: r.SalonName,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *registerOwner.Response) *RegisterResponse {
	return &RegisterResponse{
		Message: msgRegistered,
		User:    models.FromDomainUser(resp.User),
	}
}
