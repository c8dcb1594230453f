package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogModels "github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// SalonResponse публичная карточка салона
type SalonResponse struct {
	ID           string                          `json:"id"`
	Name         string                          `json:"name"`
	Code         string                          `json:"code"`
	Email        string                          `json:"email"`
	Phone        string                          `json:"phone,omitempty"`
	WorkingHours domain.WorkingHours             `json:"workingHours"`
	Services     []catalogModels.ServiceResponse `json:"services"`
}

// WorkingHoursResponse расписание салона
type WorkingHoursResponse struct {
	WorkingHours domain.WorkingHours `json:"workingHours"`
}

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}
	return &SalonResponse{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		Email:        s.Email,
		Phone:        s.Phone,
		WorkingHours: s.WorkingHours,
		Services:     catalogModels.FromDomainServiceList(s.Services).Services,
	}
}
