package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
)

type contextKey struct{}

var userKey = contextKey{}

// Authorizer resolves request credentials to a user with one of the allowed roles
type Authorizer interface {
	Authorize(ctx context.Context, allowed []models.Role, ac service.AuthContext) (*models.User, error)
}

// RequireRoles middleware authorizes the request's token against roles
// and stores the resulting user in the request context.
// The token is read from the Authorization header, with or without the
// "Bearer " prefix.
func RequireRoles(authorizer Authorizer, logger *slog.Logger, roles ...models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := service.AuthContext{Token: BearerToken(r)}

			user, err := authorizer.Authorize(r.Context(), roles, ac)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					msg, _ := service.Message(err)
					writeError(w, http.StatusUnauthorized, msg, logger)
					return
				}
				logger.Error("failed to authorize request", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// BearerToken extracts the token from the Authorization header
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// WithUser returns a context carrying user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by RequireRoles
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := models.Response{Message: message, Status: status}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
