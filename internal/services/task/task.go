// Package services содержит бизнес-логику работы с заданиями:
// листинг с фильтрами, создание и смену статуса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
)

// ErrTaskNotFound — задания с таким ID не существует.
var ErrTaskNotFound = errors.New("task not found")

// ErrInvalidExecutionDate — дата выполнения не в формате YYYY-MM-DD.
var ErrInvalidExecutionDate = errors.New("invalid execution date")

// allCategoriesFilter — сентинел фронтенда, означающий отсутствие фильтра.
const allCategoriesFilter = "Все категории"

// TaskRepository определяет методы для работы с заданиями в хранилище.
type TaskRepository interface {
	// ListTasks возвращает задания по фильтру вместе с автором и откликами.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.TaskSummary, error)
	// CreateTask добавляет новое задание и возвращает его ID.
	CreateTask(ctx context.Context, task models.Task) (int, error)
	// UpdateTaskStatus меняет статус задания, возвращает число изменённых строк.
	UpdateTaskStatus(ctx context.Context, id int, status string) (int, error)
}

// Publisher описывает публикацию событий о заданиях.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// TaskService реализует бизнес-логику работы с заданиями.
type TaskService struct {
	repo      TaskRepository
	publisher Publisher
	log       *slog.Logger
}

// NewTaskService создает новый экземпляр TaskService.
// Publisher может быть nil, тогда события не публикуются.
func NewTaskService(repo TaskRepository, publisher Publisher, log *slog.Logger) *TaskService {
	return &TaskService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// List возвращает задания, отфильтрованные по категории и статусу.
func (s *TaskService) List(ctx context.Context, category, status string) ([]*models.TaskSummary, error) {
	if category == allCategoriesFilter {
		category = ""
	}
	result, err := s.repo.ListTasks(ctx, models.TaskFilter{Category: category, Status: status})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []*models.TaskSummary{}
	}
	return result, nil
}

// Create создает задание от имени автора и публикует событие о нём.
// Неудача публикации задание не ломает.
func (s *TaskService) Create(ctx context.Context, authorID int, req models.TaskDraft) (int, error) {
	executionDate, err := time.Parse("2006-01-02", req.ExecutionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExecutionDate, err)
	}

	task := models.Task{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		Location:      req.Location,
		ExecutionDate: &executionDate,
		AuthorID:      authorID,
	}

	id, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new task", slog.Int("id", id))

	if s.publisher != nil {
		event := models.TaskCreatedEvent{
			TaskID:   id,
			Title:    req.Title,
			Category: req.Category,
			Price:    req.Price,
			AuthorID: authorID,
		}
		if err := s.publisher.Publish("created", event); err != nil {
			s.log.Warn("failed to publish task created event", slog.Int("id", id), sl.Err(err))
		}
	}

	return id, nil
}

// UpdateStatus меняет статус задания.
func (s *TaskService) UpdateStatus(ctx context.Context, id int, status string) error {
	count, err := s.repo.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	s.log.Info("updated task status", slog.Int("id", id), slog.String("status", status))
	return nil
}
