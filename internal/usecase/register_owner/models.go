package register_owner

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса регистрации владельца салона
type Request struct {
	Email     string
	Password  string
	Name      string
	Phone     *string
	SalonName string
}

// Response созданные пользователь и салон
type Response struct {
	User  *domain.User
	Salon *domain.Salon
}
