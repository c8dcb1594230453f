package update_working_hours

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	WorkingHours domain.WorkingHours `json:"workingHours"`
}
