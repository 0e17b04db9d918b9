// Package list реализует HTTP-обработчик списка задач.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-marketplace/internal/http/response"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
)

// Service описывает интерфейс получения списка задач.
type Service interface {
	List(ctx context.Context, category, status string) ([]*models.TaskSummary, error)
}

// Handler обрабатывает HTTP-запросы списка задач.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список задач
// @Description Возвращает задачи с опциональной фильтрацией по категории и статусу.
// @Tags Tasks
// @Produce  json
// @Param category query string false "Категория задачи"
// @Param status query string false "Статус задачи"
// @Success 200 {object} map[string]any "Список задач"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")

	tasks, err := h.service.List(r.Context(), category, status)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tasks"))
		return
	}

	log.Info("tasks listed", slog.Int("count", len(tasks)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"tasks": tasks,
	}))
}
