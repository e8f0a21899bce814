package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type ContextKey string

const PrincipalKey ContextKey = "principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID  int
	IsAdmin bool
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	return p, ok
}

func (s *JWTService) principal(r *http.Request) (Principal, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return Principal{}, false
	}
	claims, err := s.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return Principal{}, false
	}
	return Principal{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, true
}

// Middleware rejects requests without a valid bearer token.
func (s *JWTService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.principal(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Optional attaches the principal when a valid token is present and lets
// anonymous requests through otherwise.
func (s *JWTService) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := s.principal(r); ok {
			r = r.WithContext(WithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !p.IsAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
