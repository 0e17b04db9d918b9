// Package update реализует HTTP-обработчик смены статуса задания.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-marketplace/internal/http/response"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	taskservices "github.com/magabrotheeeer/task-marketplace/internal/services/task"
)

// Request — входные данные для смены статуса.
type Request struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

// Service описывает интерфейс смены статуса задания.
type Service interface {
	UpdateStatus(ctx context.Context, id int, status string) error
}

// Handler обрабатывает HTTP-запросы смены статуса.
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
// @Summary Смена статуса задания
// @Description Переводит задание в новый статус.
// @Tags Tasks
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "ID задания"
// @Param request body Request true "Новый статус"
// @Success 200 {object} response.Response "Статус обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или статус"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tasks/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid task id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid task id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, taskservices.ErrTaskNotFound) {
			log.Info("task not found", slog.Int("task_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("task not found"))
			return
		}
		log.Error("failed to update task status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update task status"))
		return
	}

	log.Info("task status updated", slog.Int("task_id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]string{
		"message": "status updated",
	}))
}
