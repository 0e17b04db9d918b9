// Package verify реализует HTTP-обработчик проверки токена сессии.
package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-marketplace/internal/http/response"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	authservices "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
)

// Service описывает интерфейс проверки сессии.
type Service interface {
	Verify(ctx context.Context, token string) (*models.SessionInfo, error)
}

// Handler обрабатывает HTTP-запросы проверки токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверка токена сессии
// @Description Возвращает данные пользователя, если токен действителен и не истек.
// @Tags Auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Токен действителен"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, недействителен или истек"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/verify [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.BearerToken(r)
	if !ok {
		log.Info("missing authorization header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing authorization header"))
		return
	}

	info, err := h.service.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, authservices.ErrInvalidToken):
			log.Info("invalid session token")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid session token"))
		case errors.Is(err, authservices.ErrSessionExpired):
			log.Info("session expired")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("session expired"))
		default:
			log.Error("verify failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify session"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"valid": true,
		"user": models.SessionUser{
			ID:    info.UserID,
			Name:  info.Name,
			Email: info.Email,
			Role:  info.Role,
		},
	}))
}
