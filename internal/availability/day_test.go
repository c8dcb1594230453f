package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	instant := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC) // 01:30 11 марта по UTC+3

	day := StartOfDay(instant, loc)

	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), day)
}

func TestDayWindow_CoversPreviousDaySpill(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	from, to := DayWindow(day)

	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), to)

	late := NewInterval(time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC), 60)
	assert.False(t, late.Start.Before(from))
	assert.True(t, late.End.After(day))
}
