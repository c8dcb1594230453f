package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusNoShow.IsActive())

	assert.True(t, StatusNoShow.IsValid())
	assert.False(t, BookingStatus("confirmed").IsValid())
	assert.ElementsMatch(t, []string{"PENDING", "CONFIRMED"}, ActiveStatusStrings())
}

func TestWorkingHours_ForOrDefault(t *testing.T) {
	hours := WorkingHours{
		"monday": {Open: types.MustTimeString("10:00"), Close: types.MustTimeString("12:00")},
	}

	monday := hours.ForOrDefault(time.Monday, DefaultDayHours())
	assert.Equal(t, "10:00", monday.Open.String())

	tuesday := hours.ForOrDefault(time.Tuesday, DefaultDayHours())
	assert.Equal(t, "09:00", tuesday.Open.String())
	assert.Equal(t, "18:00", tuesday.Close.String())
}

func TestWorkingHours_JSONRoundTrip(t *testing.T) {
	raw := `{"monday":{"open":"09:00","close":"18:00"},"sunday":{"open":"10:00","close":"10:00"}}`

	var hours WorkingHours
	require.NoError(t, hours.Scan([]byte(raw)))
	require.NoError(t, hours.Validate())
	assert.True(t, hours["sunday"].IsClosed())

	value, err := hours.Value()
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(value.([]byte)))
}

func TestWorkingHours_Validate(t *testing.T) {
	bad := WorkingHours{"funday": DefaultDayHours()}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidWorkingHours)

	inverted := WorkingHours{"monday": {Open: types.MustTimeString("18:00"), Close: types.MustTimeString("09:00")}}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidWorkingHours)

	var missing WorkingHours
	require.NoError(t, json.Unmarshal([]byte(`{"monday":{"open":"09:00"}}`), &missing))
	assert.ErrorIs(t, missing.Validate(), ErrInvalidWorkingHours)
}

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours()

	require.NoError(t, hours.Validate())
	assert.Len(t, hours, 7)
	assert.Equal(t, "10:00", hours["sunday"].Open.String())
	assert.Equal(t, "16:00", hours["sunday"].Close.String())
}

func TestUser(t *testing.T) {
	guest := &User{AuthID: "guest_123", Role: RoleClient}
	owner := &User{AuthID: "0c9f", Role: RoleSalonOwner}

	assert.True(t, guest.IsGuest())
	assert.False(t, guest.IsSalonOwner())
	assert.True(t, owner.IsSalonOwner())
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestParseEmail(t *testing.T) {
	email, err := ParseEmail("Bob <Bob@Example.com>")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)

	email, err = ParseEmail(" Jane@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)

	_, err = ParseEmail("not-an-email")
	assert.Error(t, err)
}
