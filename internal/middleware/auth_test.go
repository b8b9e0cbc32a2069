package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/auth"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func TestRequireRoles(t *testing.T) {
	log := logger.New("error")
	users := repository.NewInMemoryUserRepository()
	tokens := auth.NewTokenService("test-secret", time.Minute)
	authService := service.NewAuthService(users, tokens, auth.NewPasswordHasher(bcrypt.MinCost), log)

	registered, err := authService.Register(context.Background(), models.RegisterRequest{
		Email: "b@x.com", Name: "Bob", Password: "pw", Role: models.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}

	// Create a test handler that echoes the authorized user's email
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user.Email))
	})

	userOnly := RequireRoles(authService, log, models.RoleUser)(testHandler)
	adminOnly := RequireRoles(authService, log, models.RoleAdmin)(testHandler)

	tests := []struct {
		name           string
		handler        http.Handler
		header         string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "bearer token",
			handler:        userOnly,
			header:         "Bearer " + registered.Token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "raw token",
			handler:        userOnly,
			header:         registered.Token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			handler:        userOnly,
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token is not provided",
		},
		{
			name:           "invalid token",
			handler:        userOnly,
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token is invalid or has expired",
		},
		{
			name:           "role not allowed",
			handler:        adminOnly,
			header:         "Bearer " + registered.Token,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/basket", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "b@x.com" {
					t.Errorf("body = %s, want b@x.com", w.Body.String())
				}
				return
			}

			var resp models.Response
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Message != tt.expectedMsg {
				t.Errorf("message = %q, want %q", resp.Message, tt.expectedMsg)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"abc", "abc"},
		{"Bearer", "Bearer"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", tt.header)
		if got := BearerToken(req); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
