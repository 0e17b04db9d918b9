// Package create реализует HTTP-обработчик создания задания.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-marketplace/internal/http/response"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	taskservices "github.com/magabrotheeeer/task-marketplace/internal/services/task"
)

// Service описывает интерфейс создания задания.
type Service interface {
	Create(ctx context.Context, authorID int, req models.TaskDraft) (int, error)
}

// Handler обрабатывает HTTP-запросы создания задания.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание задания
// @Description Создает задание от имени пользователя текущей сессии.
// @Tags Tasks
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.TaskDraft true "Данные задания"
// @Success 201 {object} map[string]any "Задание создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Сессия недействительна"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tasks [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authorID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid session token"))
		return
	}

	var req models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), authorID, req)
	if err != nil {
		if errors.Is(err, taskservices.ErrInvalidExecutionDate) {
			log.Error("invalid execution date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid execution date, expected YYYY-MM-DD"))
			return
		}
		log.Error("failed to create task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create task"))
		return
	}

	log.Info("task created", slog.Int("task_id", id), slog.Int("author_id", authorID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]int{
		"id": id,
	}))
}
