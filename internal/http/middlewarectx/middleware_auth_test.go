package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/enftlab/enft-backend/internal/lib/jwt"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantNext       bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			mockClaims: &jwt.CustomClaims{
				Email:    "alice@example.com",
				Nickname: "alice",
				Role:     jwt.RoleUser,
			},
			wantStatusCode: http.StatusOK,
			wantNext:       true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantNext:       false,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			wantStatusCode: http.StatusUnauthorized,
			wantNext:       false,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer stale-token",
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
			wantNext:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, mock.Anything).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			var nextCalled bool
			var gotEmail, gotRole any
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotEmail = r.Context().Value(Email)
				gotRole = r.Context().Value(Role)
				w.WriteHeader(http.StatusOK)
			})

			mw := JWTMiddleware(authMock, newNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/approval", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, tt.mockClaims.Email, gotEmail)
				assert.Equal(t, tt.mockClaims.Role, gotRole)
			}
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		role           any
		wantStatusCode int
		wantNext       bool
	}{
		{name: "admin passes", role: jwt.RoleAdmin, wantStatusCode: http.StatusOK, wantNext: true},
		{name: "user forbidden", role: jwt.RoleUser, wantStatusCode: http.StatusForbidden, wantNext: false},
		{name: "no role", role: nil, wantStatusCode: http.StatusUnauthorized, wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := AdminOnlyMiddleware(newNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/admin/mint", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
