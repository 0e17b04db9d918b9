package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-marketplace/internal/models"
	services "github.com/magabrotheeeer/task-marketplace/internal/services/user"
	"github.com/magabrotheeeer/task-marketplace/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserProfile(ctx context.Context, userID int) (*models.User, *models.ProfileStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.ProfileStats), args.Error(2)
}

func (m *UserRepoMock) GetWorkHistory(ctx context.Context, userID, limit int) ([]*models.WorkHistoryItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkHistoryItem), args.Error(1)
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *UserRepoMock, cache services.Cache) *services.UserService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return services.NewUserService(repo, cache, logger)
}

func TestUserService_GetProfile(t *testing.T) {
	rating := 4.8
	bio := "Монтаж и сборка мебели"
	specs := "сборка мебели, электрика"
	createdAt := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	comment := "Отличная работа"

	repo := new(UserRepoMock)
	repo.On("GetUserProfile", mock.Anything, 1).Return(
		&models.User{
			ID:              1,
			Name:            "Ivan",
			Email:           "ivan@example.com",
			Role:            "worker",
			Rating:          &rating,
			Bio:             &bio,
			Specializations: &specs,
			CreatedAt:       &createdAt,
		},
		&models.ProfileStats{CompletedTasks: 2, CompletedWorks: 5, TotalEarned: 17500},
		nil,
	).Once()
	repo.On("GetWorkHistory", mock.Anything, 1, 10).Return(
		[]*models.WorkHistoryItem{
			{Task: "Собрать шкаф", Price: 3500, Date: "15.03.2024", Rating: 5, Comment: &comment},
		},
		nil,
	).Once()
	svc := newTestService(repo, nil)

	profile, err := svc.GetProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, profile.ID)
	assert.Equal(t, 4.8, profile.Rating)
	assert.Equal(t, "2023-06-01", profile.MemberSince)
	assert.Equal(t, []string{"сборка мебели", "электрика"}, profile.Specializations)
	assert.Equal(t, 5, profile.Stats.CompletedWorks)
	require.Len(t, profile.WorkHistory, 1)
	assert.Equal(t, "Собрать шкаф", profile.WorkHistory[0].Task)
	repo.AssertExpectations(t)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUserProfile", mock.Anything, 99).
		Return(nil, nil, fmt.Errorf("storage.GetUserProfile: %w", sql.ErrNoRows)).Once()
	svc := newTestService(repo, nil)

	_, err := svc.GetProfile(context.Background(), 99)

	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserService_GetProfile_CacheHit(t *testing.T) {
	repo := new(UserRepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:1", mock.Anything).
		Run(func(args mock.Arguments) {
			profile := args.Get(1).(*models.Profile)
			profile.ID = 1
			profile.Name = "Cached Ivan"
		}).
		Return(true, nil).Once()
	svc := newTestService(repo, cache)

	profile, err := svc.GetProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Cached Ivan", profile.Name)
	repo.AssertNotCalled(t, "GetUserProfile", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "successful create",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "new@example.com" && user.PasswordHash == ""
				})).Return(3, nil).Once()
			},
			wantID: 3,
		},
		{
			name: "duplicate email",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("storage.CreateUser: %w", repository.ErrDuplicateEmail)).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := newTestService(repo, nil)

			id, err := svc.CreateUser(context.Background(), models.UserDraft{
				Name:  "New User",
				Email: "new@example.com",
				Role:  "client",
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}
