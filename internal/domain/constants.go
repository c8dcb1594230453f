package domain

// Slot grid
const (
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 24 * 60
	MaxServiceNameLength      = 200
	MaxDescriptionLength      = 2000
	SalonCodeLength           = 6
	MaxCustomerNameLength     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	DateTimeFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM, wall clock of the salon
)

// ActiveStatuses statuses that block a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatusStrings returns ActiveStatuses as strings for SQL filters
func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
