package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dlriva/proposalforge/internal/domain/user"
)

type authUserCtxKey struct{}

// TokenValidator validates an access token and returns its claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*user.TokenClaims, error)
}

// publicPaths are exempt from authentication.
var publicPaths = map[string]bool{
	"/health":               true,
	"/health/ready":         true,
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
}

// Auth returns middleware that validates Bearer token credentials and
// stores the authenticated owner in the request context. Uploaded logo
// assets are public so exported documents can reference them.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/uploads/") {
				next.ServeHTTP(w, r)
				return
			}

			token, errMsg := bearerToken(r)
			if errMsg != "" {
				http.Error(w, `{"error":"`+errMsg+`"}`, http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			u := &user.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Name:  claims.Name,
			}
			ctx := context.WithValue(r.Context(), authUserCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. The
// second return is a client-facing message when the header is missing or
// not a Bearer scheme.
func bearerToken(r *http.Request) (token, errMsg string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "authorization required"
	}
	token = strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return "", "invalid authorization header"
	}
	return token, ""
}

// UserFromContext returns the authenticated user from the request context.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(authUserCtxKey{}).(*user.User)
	return u
}

// WithUser injects a user into the context. Exported for handler tests.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, authUserCtxKey{}, u)
}
