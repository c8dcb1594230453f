package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
)

const (
	msgNoToken             = "No token provided"
	msgInvalidToken        = "Invalid token"
	msgAuthFailed          = "Authentication failed"
	msgUserNotFound        = "User not found"
	msgNotAuthenticated    = "Not authenticated"
	msgOwnerAccessRequired = "Salon owner access required"
)

// Auth аутентификация по заголовку Authorization: Bearer <token>
type Auth struct {
	verifier TokenVerifier
	resolver IdentityResolver
	logger   Logger
}

func NewAuth(verifier TokenVerifier, resolver IdentityResolver, logger Logger) *Auth {
	return &Auth{
		verifier: verifier,
		resolver: resolver,
		logger:   logger,
	}
}

// VerifyToken проверяет токен у провайдера и кладет его subject в контекст.
// Наличие пользователя в базе сервиса не требуется.
func (a *Auth) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authID, ok := a.verify(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAuthID(r.Context(), authID)))
	})
}

// Authenticate проверяет токен и находит пользователя сервиса вместе с его салоном
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authID, ok := a.verify(w, r)
		if !ok {
			return
		}

		user, err := a.resolver.ResolveIdentity(r.Context(), authID)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				a.logger.Warn("Auth: user not found for auth_id=%s", authID)
				handlers.RespondUnauthorized(w, msgUserNotFound)
				return
			}
			a.logger.Error("Auth: failed to resolve auth_id=%s: %v", authID, err)
			handlers.RespondInternalError(w)
			return
		}

		ctx := WithAuthID(r.Context(), authID)
		ctx = WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSalonOwner пропускает только владельцев салонов. Ставится после Authenticate.
func RequireSalonOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
			return
		}
		if !user.IsSalonOwner() {
			handlers.RespondForbidden(w, msgOwnerAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) verify(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearerToken(r)
	if token == "" {
		handlers.RespondUnauthorized(w, msgNoToken)
		return "", false
	}

	authUser, err := a.verifier.GetUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, supabase.ErrInvalidToken) {
			a.logger.Warn("Auth: token rejected: %v", err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
		} else {
			a.logger.Error("Auth: token verification failed: %v", err)
			handlers.RespondUnauthorized(w, msgAuthFailed)
		}
		return "", false
	}

	return authUser.ID, true
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
