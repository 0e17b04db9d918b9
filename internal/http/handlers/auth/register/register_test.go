package register

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

	"github.com/magabrotheeeer/task-marketplace/internal/models"
	authservices "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, req authservices.RegisterRequest) (*authservices.Result, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*authservices.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	validBody := Request{
		Name:     "Анна Смирнова",
		Email:    "anna@example.com",
		Password: "password123",
		Role:     "client",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockResult     *authservices.Result
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
		wantToken      string
	}{
		{
			name:        "успешная регистрация",
			requestBody: validBody,
			mockResult: &authservices.Result{
				User: models.PublicUser{
					ID:    1,
					Name:  "Анна Смирнова",
					Email: "anna@example.com",
					Role:  "client",
				},
				SessionToken: "tok123",
			},
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
			wantToken:      "tok123",
		},
		{
			name:           "некорректный json",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "ошибка валидации - нет пароля",
			requestBody: Request{
				Name:  "Анна Смирнова",
				Email: "anna@example.com",
				Role:  "client",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name: "ошибка валидации - неизвестная роль",
			requestBody: Request{
				Name:     "Анна Смирнова",
				Email:    "anna@example.com",
				Password: "password123",
				Role:     "admin",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Role must be one of: client worker",
			wantStatus:     "Error",
		},
		{
			name:           "email уже занят",
			requestBody:    validBody,
			mockErr:        authservices.ErrEmailTaken,
			wantStatusCode: http.StatusConflict,
			wantError:      "user with this email already exists",
			wantStatus:     "Error",
		},
		{
			name:           "внутренняя ошибка сервиса",
			requestBody:    validBody,
			mockErr:        errors.New("storage error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockResult != nil || tt.mockErr != nil {
				serviceMock.On("Register", mock.Anything, mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantToken != "" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantToken, data["sessionToken"])

				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "anna@example.com", user["email"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
