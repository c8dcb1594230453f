package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Step is the distance between consecutive candidate start times.
const Step = domain.SlotStepMinutes * time.Minute

// Generate returns the "HH:MM" start times on date at which a service of
// durationMinutes fits inside the weekday's working hours without overlapping
// any of the active intervals. A weekday missing from hours uses 09:00-18:00.
//
// Candidates start at the opening time and advance by Step. The result is
// ascending, never nil, and depends only on the arguments.
func Generate(
	hours domain.WorkingHours,
	weekday time.Weekday,
	durationMinutes int,
	active []Interval,
	date time.Time,
) []string {
	day := hours.ForOrDefault(weekday, domain.DefaultDayHours())
	return generateForDay(day, durationMinutes, active, date)
}

func generateForDay(day domain.DayHours, durationMinutes int, active []Interval, date time.Time) []string {
	slots := make([]string, 0)
	if durationMinutes <= 0 || day.IsClosed() {
		return slots
	}

	open := day.Open.On(date)
	closeAt := day.Close.On(date)

	for start := open; start.Before(closeAt); start = start.Add(Step) {
		candidate := NewInterval(start, durationMinutes)
		if candidate.End.After(closeAt) {
			// дальше по сетке концы только позже
			break
		}
		if Conflicts(candidate, active) {
			continue
		}
		slots = append(slots, start.Format(domain.TimeFormat))
	}

	return slots
}

// IsOnGrid reports whether start is a start time Generate could offer on its
// calendar day, ignoring existing bookings: aligned to Step from the opening
// time and finishing no later than closing time.
func IsOnGrid(hours domain.WorkingHours, start time.Time, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}

	day := hours.ForOrDefault(start.Weekday(), domain.DefaultDayHours())
	if day.IsClosed() {
		return false
	}

	open := day.Open.On(start)
	closeAt := day.Close.On(start)

	if start.Before(open) || !start.Before(closeAt) {
		return false
	}
	if start.Sub(open)%Step != 0 {
		return false
	}
	return !NewInterval(start, durationMinutes).End.After(closeAt)
}
