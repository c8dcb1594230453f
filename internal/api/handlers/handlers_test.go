package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	day, err := ParseDate("2025-03-10", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), day)

	// Момент переводится в сутки салона: 22:00 UTC это уже 11 марта в Москве
	day, err = ParseDate("2025-03-10T22:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), day)

	_, err = ParseDate("10.03.2025", loc)
	assert.Error(t, err)

	_, err = ParseDate("", loc)
	assert.Error(t, err)
}

func TestParseInstant(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	start, err := ParseInstant("2025-03-10T10:30", loc)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)))

	start, err = ParseInstant("2025-03-10T10:30:00Z", loc)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)))

	_, err = ParseInstant("2025-03-10", loc)
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Glow"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Glow", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondBadRequest(rec, "This slot is no longer available")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"This slot is no longer available"}`, rec.Body.String())
}
