package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayWindow returns the start-time range [from, to) of bookings that can
// intersect the calendar day beginning at day. It reaches back by the longest
// allowed service so a booking running past the previous midnight is seen.
func DayWindow(day time.Time) (from, to time.Time) {
	from = day.Add(-domain.MaxServiceDurationMinutes * time.Minute)
	to = day.AddDate(0, 0, 1)
	return from, to
}
