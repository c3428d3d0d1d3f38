package checkemail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/enftlab/enft-backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CheckEmail(ctx context.Context, email string) (models.Availability, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.Availability), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCheckEmailHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		mockResult     models.Availability
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantStatus     string
		wantUsable     bool
	}{
		{
			name:           "available email",
			email:          "free@example.com",
			mockResult:     models.Availability{Usable: true, Message: "email is available"},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantUsable:     true,
		},
		{
			name:           "taken email",
			email:          "alice@example.com",
			mockResult:     models.Availability{Usable: false, Message: "email already registered"},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantUsable:     false,
		},
		{
			name:           "invalid email",
			email:          "not-an-email",
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			email:          "alice@example.com",
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockCalled {
				serviceMock.On("CheckEmail", mock.Anything, tt.email).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/users/check/email/"+tt.email, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("email", tt.email)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantUsable, data["usable"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
