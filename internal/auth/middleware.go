package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/httputil"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/user"
)

type contextKey string

const (
	// UserIDKey is the context key for the acting user's id
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for the acting user's email
	EmailKey contextKey = "email"
)

const notAuthenticated = "Not Authenticated"

// UserFinder resolves a token's user id to an account
type UserFinder interface {
	GetByID(ctx context.Context, id int) (*user.User, error)
}

// Middleware validates the Authorization header and injects the acting user
// into the request context. Original clients send the raw token, newer ones
// send "Bearer <token>"; both are accepted. Missing, malformed or expired
// tokens and unknown or inactive accounts all yield the same 401 body.
func Middleware(tokens *TokenManager, users UserFinder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("missing authorization header", "path", r.URL.Path)
				httputil.RespondWithErrors(w, http.StatusUnauthorized, notAuthenticated)
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				logger.Warn("invalid token", "error", err)
				httputil.RespondWithErrors(w, http.StatusUnauthorized, notAuthenticated)
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil || !u.Active {
				logger.Warn("token for unknown or inactive account", "user_id", claims.UserID)
				httputil.RespondWithErrors(w, http.StatusUnauthorized, notAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, u.ID)
			ctx = context.WithValue(ctx, EmailKey, u.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the acting user's id from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmail extracts the acting user's email from context
func GetEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
