package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ErrInvalidWorkingHours is returned for malformed working hours
var ErrInvalidWorkingHours = errors.New("invalid working hours")

// DayHours is the open/close pair for one weekday. Open == Close means closed.
type DayHours struct {
	Open  types.TimeString `json:"open"`
	Close types.TimeString `json:"close"`
}

// IsClosed reports an explicitly closed day
func (d DayHours) IsClosed() bool {
	return !d.Open.IsBefore(d.Close)
}

// Validate checks both times are set and open does not come after close
func (d DayHours) Validate() error {
	if err := d.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidWorkingHours, err)
	}
	if err := d.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidWorkingHours, err)
	}
	if d.Open.IsAfter(d.Close) {
		return fmt.Errorf("%w: open %s after close %s", ErrInvalidWorkingHours, d.Open, d.Close)
	}
	return nil
}

// WorkingHours maps a lower-case English weekday name ("monday") to its hours.
// Stored as JSONB.
type WorkingHours map[string]DayHours

// WeekdayKey returns the map key used for wd
func WeekdayKey(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// For returns the hours for wd and whether they were configured
func (w WorkingHours) For(wd time.Weekday) (DayHours, bool) {
	h, ok := w[WeekdayKey(wd)]
	return h, ok
}

// ForOrDefault returns the hours for wd, falling back to def when the day is missing
func (w WorkingHours) ForOrDefault(wd time.Weekday, def DayHours) DayHours {
	if h, ok := w.For(wd); ok {
		return h
	}
	return def
}

// Validate checks every key is a weekday and every entry is well-formed
func (w WorkingHours) Validate() error {
	for key, hours := range w {
		if !isWeekdayKey(key) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidWorkingHours, key)
		}
		if err := hours.Validate(); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Value implements driver.Valuer (JSONB)
func (w WorkingHours) Value() (driver.Value, error) {
	if w == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner (JSONB)
func (w *WorkingHours) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*w = WorkingHours{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidWorkingHours, src)
	}

	hours := WorkingHours{}
	if err := json.Unmarshal(data, &hours); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	*w = hours
	return nil
}

func isWeekdayKey(key string) bool {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if WeekdayKey(wd) == key {
			return true
		}
	}
	return false
}

// DefaultDayHours fallback for a weekday missing from WorkingHours
func DefaultDayHours() DayHours {
	return DayHours{Open: types.MustTimeString("09:00"), Close: types.MustTimeString("18:00")}
}

// DefaultWorkingHours schedule assigned to a newly registered salon
func DefaultWorkingHours() WorkingHours {
	weekday := DefaultDayHours()
	return WorkingHours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  weekday,
		"sunday":    {Open: types.MustTimeString("10:00"), Close: types.MustTimeString("16:00")},
	}
}

// Salon represents a business that accepts bookings
type Salon struct {
	ID           string
	Name         string
	Code         string // public 6-character code clients use to find the salon
	Email        string
	Phone        string
	OwnerID      string
	WorkingHours WorkingHours

	// Filled by GetByCode
	Services []*Service

	CreatedAt time.Time
	UpdatedAt time.Time
}
