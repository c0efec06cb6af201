package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates an access token issued to the registry owner.
type TokenValidator interface {
	ValidateToken(tokenString string) (*OwnerClaims, error)
}

// OwnerClaims is what the middleware needs from a validated token.
type OwnerClaims struct {
	OwnerRef string
}

type contextKeyCaller struct{}

// GetCaller retrieves the authenticated caller identity from the context, or
// "" on unauthenticated routes.
func GetCaller(ctx context.Context) string {
	caller, ok := ctx.Value(contextKeyCaller{}).(string)
	if !ok {
		return ""
	}
	return caller
}

// RequireAuth guards administrative routes. It validates the bearer token and
// stores the caller identity in the context; the service layer still checks
// that identity against the registry owner.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, contextKeyCaller{}, claims.OwnerRef)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
