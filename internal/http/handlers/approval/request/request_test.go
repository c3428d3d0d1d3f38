package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/enftlab/enft-backend/internal/http/middlewarectx"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) RequestApproval(ctx context.Context, email string, req models.DummyApproval) (string, error) {
	args := m.Called(ctx, email, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRequestHandler_ServeHTTP(t *testing.T) {
	validReq := models.DummyApproval{
		RequestLocation: "seoul-hall",
		RequestDay:      3,
	}

	tests := []struct {
		name           string
		ctxEmail       string
		requestBody    interface{}
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "valid request",
			ctxEmail:       "alice@example.com",
			requestBody:    validReq,
			mockUID:        "approval-uid",
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "missing identity",
			ctxEmail:       "",
			requestBody:    validReq,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "user identification missing",
		},
		{
			name:           "invalid json body",
			ctxEmail:       "alice@example.com",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:     "validation error - zero day",
			ctxEmail: "alice@example.com",
			requestBody: models.DummyApproval{
				RequestLocation: "seoul-hall",
				RequestDay:      0,
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field RequestDay is a required field",
		},
		{
			name:           "pending approval exists",
			ctxEmail:       "alice@example.com",
			requestBody:    validReq,
			mockErr:        repository.ErrApprovalExists,
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantError:      "pending approval already exists",
		},
		{
			name:           "storage error",
			ctxEmail:       "alice@example.com",
			requestBody:    validReq,
			mockErr:        errors.New("connection refused"),
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "failed to create approval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockUID != "" || tt.mockErr != nil {
				serviceMock.On("RequestApproval", mock.Anything, tt.ctxEmail, mock.Anything).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/approvals", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.ctxEmail != "" {
				ctx = context.WithValue(ctx, middlewarectx.Email, tt.ctxEmail)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.mockUID, data["uid"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
