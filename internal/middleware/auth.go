package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

const sessionCookieName = "session"

// Verifier resolves a bearer token to a caller identity. Implemented by
// service.AuthService.
type Verifier interface {
	Verify(ctx context.Context, token string) (*model.Identity, error)
}

// Auth returns a middleware that requires a valid session token on every
// request. The token is read from the Authorization header (Bearer scheme)
// or, failing that, from the session cookie. On success the caller's
// identity is stored in the request context.
func Auth(verifier Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				unauthorized(w, "Missing authentication token")
				return
			}

			identity, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				unauthorized(w, authFailureDetail(err))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from context. The second
// return value is false on unauthenticated requests.
func GetIdentity(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	return identity, ok
}

// GetUserID extracts the authenticated user's ID from context, or 0.
func GetUserID(ctx context.Context) int64 {
	if identity, ok := GetIdentity(ctx); ok {
		return identity.UserID
	}
	return 0
}

// extractToken pulls the session token from the request. The Authorization
// header wins over the cookie.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func authFailureDetail(err error) string {
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return "Session has expired"
	case errors.Is(err, service.ErrSessionRevoked):
		return "Session has been revoked"
	default:
		return "Invalid authentication token"
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="storefront"`)
	model.NewUnauthorizedError(detail).WriteJSON(w)
}
