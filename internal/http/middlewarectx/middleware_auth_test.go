package middlewarectx_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	authservices "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
)

// Мок для Service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Verify(ctx context.Context, sessionToken string) (*models.SessionInfo, error) {
	args := m.Called(ctx, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionInfo), args.Error(1)
}

func TestSessionMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *AuthServiceMock)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:       "valid token passes user to context",
			authHeader: "Bearer good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Verify", mock.Anything, "good-token").
					Return(&models.SessionInfo{UserID: 1, Name: "Ivan", Role: "client"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing authorization header"}`,
		},
		{
			name:           "header without bearer prefix",
			authHeader:     "Token abc",
			setupMock:      func(_ *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing authorization header"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Verify", mock.Anything, "bad-token").
					Return(nil, authservices.ErrInvalidToken).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid session token"}`,
		},
		{
			name:       "expired token",
			authHeader: "Bearer old-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Verify", mock.Anything, "old-token").
					Return(nil, authservices.ErrSessionExpired).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"session expired"}`,
		},
		{
			name:       "service error",
			authHeader: "Bearer any-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("Verify", mock.Anything, "any-token").
					Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"internal service error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(AuthServiceMock)
			tt.setupMock(authService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				userID, _ := r.Context().Value(middlewarectx.UserID).(int)
				role, _ := r.Context().Value(middlewarectx.Role).(string)
				assert.Equal(t, 1, userID)
				assert.Equal(t, "client", role)
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.SessionMiddleware(authService, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			authService.AssertExpectations(t)
		})
	}
}
