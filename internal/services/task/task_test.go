package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-marketplace/internal/models"
	services "github.com/magabrotheeeer/task-marketplace/internal/services/task"
)

// Мок для TaskRepository
type TaskRepoMock struct {
	mock.Mock
}

func (m *TaskRepoMock) ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.TaskSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TaskSummary), args.Error(1)
}

func (m *TaskRepoMock) CreateTask(ctx context.Context, task models.Task) (int, error) {
	args := m.Called(ctx, task)
	return args.Int(0), args.Error(1)
}

func (m *TaskRepoMock) UpdateTaskStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

// Мок для Publisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestService(repo *TaskRepoMock, publisher services.Publisher) *services.TaskService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return services.NewTaskService(repo, publisher, logger)
}

func TestTaskService_List(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		status     string
		wantFilter models.TaskFilter
	}{
		{
			name:       "category and status are passed through",
			category:   "Ремонт",
			status:     "open",
			wantFilter: models.TaskFilter{Category: "Ремонт", Status: "open"},
		},
		{
			name:       "all-categories sentinel drops the filter",
			category:   "Все категории",
			status:     "",
			wantFilter: models.TaskFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(TaskRepoMock)
			repo.On("ListTasks", mock.Anything, tt.wantFilter).
				Return([]*models.TaskSummary{{ID: 1, Title: "Собрать шкаф"}}, nil).Once()
			svc := newTestService(repo, nil)

			got, err := svc.List(context.Background(), tt.category, tt.status)

			require.NoError(t, err)
			assert.Len(t, got, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestTaskService_List_EmptyResultIsNotNil(t *testing.T) {
	repo := new(TaskRepoMock)
	repo.On("ListTasks", mock.Anything, mock.Anything).Return([]*models.TaskSummary(nil), nil).Once()
	svc := newTestService(repo, nil)

	got, err := svc.List(context.Background(), "", "")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTaskService_Create(t *testing.T) {
	draft := models.TaskDraft{
		Title:         "Собрать шкаф",
		Description:   "Шкаф ИКЕА, все детали на месте",
		Price:         3500,
		Category:      "Ремонт",
		Location:      "Москва",
		ExecutionDate: "2024-03-15",
	}

	t.Run("successful create publishes event", func(t *testing.T) {
		repo := new(TaskRepoMock)
		publisher := new(PublisherMock)
		repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
			return task.AuthorID == 7 && task.Title == draft.Title && task.ExecutionDate != nil
		})).Return(42, nil).Once()
		publisher.On("Publish", "created", mock.MatchedBy(func(event models.TaskCreatedEvent) bool {
			return event.TaskID == 42 && event.AuthorID == 7
		})).Return(nil).Once()
		svc := newTestService(repo, publisher)

		id, err := svc.Create(context.Background(), 7, draft)

		require.NoError(t, err)
		assert.Equal(t, 42, id)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		repo := new(TaskRepoMock)
		publisher := new(PublisherMock)
		repo.On("CreateTask", mock.Anything, mock.Anything).Return(42, nil).Once()
		publisher.On("Publish", "created", mock.Anything).Return(errors.New("broker unavailable")).Once()
		svc := newTestService(repo, publisher)

		id, err := svc.Create(context.Background(), 7, draft)

		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("invalid execution date", func(t *testing.T) {
		repo := new(TaskRepoMock)
		svc := newTestService(repo, nil)

		bad := draft
		bad.ExecutionDate = "15.03.2024"
		_, err := svc.Create(context.Background(), 7, bad)

		require.ErrorIs(t, err, services.ErrInvalidExecutionDate)
		repo.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *TaskRepoMock)
		wantErr    error
	}{
		{
			name: "successful update",
			setupMocks: func(r *TaskRepoMock) {
				r.On("UpdateTaskStatus", mock.Anything, 1, "completed").Return(1, nil).Once()
			},
		},
		{
			name: "missing task",
			setupMocks: func(r *TaskRepoMock) {
				r.On("UpdateTaskStatus", mock.Anything, 1, "completed").Return(0, nil).Once()
			},
			wantErr: services.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(TaskRepoMock)
			tt.setupMocks(repo)
			svc := newTestService(repo, nil)

			err := svc.UpdateStatus(context.Background(), 1, "completed")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
