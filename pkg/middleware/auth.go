package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const identityCtxKey contextKeyType = "identity"

// Claims are the token claims the storefront cares about. The identity
// provider issuing the tokens is external; only validation happens here.
type Claims struct {
	Identity string `json:"identity"`
	Email    string `json:"email"`
}

// TokenValidator validates a bearer token and returns its claims. Injected so
// the application controls signing keys and algorithms.
type TokenValidator func(token string) (*Claims, error)

// Auth validates the Authorization bearer token and stores the caller
// identity in the request context. Requests without a valid token are
// rejected with 401 before any handler runs.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			claims, err := validate(parts[1])
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey, claims.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated caller identity from the
// request context. Empty string means no identity was established.
func IdentityFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(identityCtxKey).(string); ok {
		return id
	}
	return ""
}

// WithIdentity stores an identity in the context directly. Used by tests that
// exercise handlers without the full auth stack.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
