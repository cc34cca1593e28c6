package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/tournament-manager/services"
)

// TokenParser is the part of services.AuthService the middleware needs.
type TokenParser interface {
	ParseToken(tokenString string) (jwt.MapClaims, error)
}

// Authenticate reads an optional Bearer token. Requests without one pass
// through as anonymous; a present but invalid token is rejected with 401.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, tokenString, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				writeError(w, r, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(tokenString))
			if err != nil {
				if errors.Is(err, services.ErrForbiddenOperation) {
					writeError(w, r, http.StatusForbidden, "admin role required")
					return
				}
				slog.DebugContext(r.Context(), "rejected bearer token", "error", err)
				writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := withClaims(r.Context(), claims)
			ctx = services.WithPrivilege(ctx, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := RoleFromContext(r.Context())
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		if role != services.RoleAdmin || !services.IsPrivileged(r.Context()) {
			writeError(w, r, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
