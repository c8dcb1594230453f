package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubVerifier map[string]string

func (v stubVerifier) GetUser(_ context.Context, token string) (*supabase.AuthUser, error) {
	if token == "broken" {
		return nil, supabase.ErrInternal
	}
	id, ok := v[token]
	if !ok {
		return nil, supabase.ErrInvalidToken
	}
	return &supabase.AuthUser{ID: id}, nil
}

type stubResolver map[string]*domain.User

func (r stubResolver) ResolveIdentity(_ context.Context, authID string) (*domain.User, error) {
	if authID == "db-down" {
		return nil, errors.New("connection refused")
	}
	user, ok := r[authID]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func newTestAuth() *Auth {
	verifier := stubVerifier{
		"owner-token":   "auth-owner",
		"client-token":  "auth-client",
		"orphan-token":  "auth-orphan",
		"db-down-token": "db-down",
	}
	resolver := stubResolver{
		"auth-owner": {
			ID: "u1", AuthID: "auth-owner", Role: domain.RoleSalonOwner,
			OwnedSalon: &domain.Salon{ID: "salon-1"},
		},
		"auth-client": {ID: "u2", AuthID: "auth-client", Role: domain.RoleClient},
	}
	return NewAuth(verifier, resolver, logger.Nop())
}

func ownerOnly(a *Auth) http.Handler {
	return a.Authenticate(RequireSalonOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		salonID, _ := GetSalonID(r.Context())
		_, _ = w.Write([]byte(salonID))
	})))
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_StatusCodes(t *testing.T) {
	h := ownerOnly(newTestAuth())

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "owner", token: "owner-token", status: http.StatusOK},
		{name: "no token", token: "", status: http.StatusUnauthorized},
		{name: "invalid token", token: "nope", status: http.StatusUnauthorized},
		{name: "provider failure", token: "broken", status: http.StatusUnauthorized},
		{name: "user not synced", token: "orphan-token", status: http.StatusUnauthorized},
		{name: "client is not owner", token: "client-token", status: http.StatusForbidden},
		{name: "store failure", token: "db-down-token", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.token)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthenticate_PutsSalonIntoContext(t *testing.T) {
	rec := serve(ownerOnly(newTestAuth()), "owner-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "salon-1", rec.Body.String())
}

func TestVerifyToken_DoesNotRequireLocalUser(t *testing.T) {
	a := newTestAuth()
	h := a.VerifyToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authID, ok := GetAuthID(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(authID))
	}))

	rec := serve(h, "orphan-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth-orphan", rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(req))
}
