// Package middlewarectx содержит HTTP middleware запросов: проверку
// bearer-токена сессии с прокладкой данных пользователя в контекст
// и ограничение частоты запросов.
//
// SessionMiddleware извлекает токен из заголовка Authorization, проверяет
// его через сервис аутентификации и в случае успеха добавляет в контекст
// ID и роль пользователя. Несуществующий или истёкший токен — HTTP 401.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-marketplace/internal/http/response"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	authservices "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для ID пользователя в контексте
	UserID Key = "user_id"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// Service описывает интерфейс проверки токена сессии.
type Service interface {
	Verify(ctx context.Context, sessionToken string) (*models.SessionInfo, error)
}

// BearerToken извлекает токен из заголовка Authorization.
// Возвращает false, если заголовок отсутствует или не в формате Bearer.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// SessionMiddleware возвращает HTTP middleware, который проверяет токен
// сессии в заголовке Authorization.
//
// Если токен валиден, добавляет ID и роль пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := BearerToken(r)
			if !ok {
				log.Error("missing authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing authorization header"))
				return
			}

			info, err := authService.Verify(r.Context(), tokenStr)
			if err != nil {
				switch {
				case errors.Is(err, authservices.ErrInvalidToken):
					log.Error("invalid session token")
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("invalid session token"))
				case errors.Is(err, authservices.ErrSessionExpired):
					log.Error("session expired")
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("session expired"))
				default:
					log.Error("failed to verify session", sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					render.JSON(w, r, response.Error("internal service error"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserID, info.UserID)
			ctx = context.WithValue(ctx, Role, info.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
