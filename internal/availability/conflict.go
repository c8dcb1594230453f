// Package availability computes offerable start times for a salon day and decides
// whether a candidate booking collides with existing ones. Both the slot query and
// the booking commit go through Conflicts, so what is offered is what is admitted.
package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns [start, start+durationMinutes).
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// Overlaps reports whether the two ranges share any instant.
// Touching ranges (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Conflicts reports whether candidate overlaps any interval in existing.
func Conflicts(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// ActiveIntervals converts bookings to intervals, dropping the ones that no longer
// hold their slot (COMPLETED, CANCELLED, NO_SHOW).
func ActiveIntervals(bookings []*domain.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		out = append(out, BookingInterval(b))
	}
	return out
}

// BookingInterval returns the time range a booking occupies.
func BookingInterval(b *domain.Booking) Interval {
	if !b.EndAt.IsZero() {
		return Interval{Start: b.StartAt, End: b.EndAt}
	}
	return NewInterval(b.StartAt, b.DurationMinutes)
}
