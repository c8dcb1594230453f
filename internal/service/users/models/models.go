package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SyncUserRequest данные пользователя провайдера для синхронизации
type SyncUserRequest struct {
	AuthID string `json:"authId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SalonSummary салон владельца в профиле
type SalonSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UserResponse профиль пользователя
type UserResponse struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Phone     *string       `json:"phone,omitempty"`
	Role      string        `json:"role"`
	Salon     *SalonSummary `json:"salon,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.OwnedSalon != nil {
		resp.Salon = &SalonSummary{
			ID:   u.OwnedSalon.ID,
			Name: u.OwnedSalon.Name,
			Code: u.OwnedSalon.Code,
		}
	}
	return resp
}
