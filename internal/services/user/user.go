// Package services содержит бизнес-логику профилей пользователей,
// включая кеширование собранных профилей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	"github.com/magabrotheeeer/task-marketplace/internal/storage/repository"
)

// Классифицированные ошибки профилей.
var (
	// ErrUserNotFound — пользователя с таким ID не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken — пользователь с таким email уже существует.
	ErrEmailTaken = errors.New("user with this email already exists")
)

// workHistoryLimit — сколько последних работ попадает в профиль.
const workHistoryLimit = 10

// profileCacheTTL — время жизни собранного профиля в кеше.
const profileCacheTTL = 5 * time.Minute

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUserProfile возвращает пользователя и его статистику.
	GetUserProfile(ctx context.Context, userID int) (*models.User, *models.ProfileStats, error)
	// GetWorkHistory возвращает последние выполненные работы пользователя.
	GetWorkHistory(ctx context.Context, userID, limit int) ([]*models.WorkHistoryItem, error)
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserService реализует бизнес-логику профилей пользователей.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
// Cache может быть nil, тогда профили собираются на каждый запрос.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetProfile возвращает собранный профиль пользователя, используя кеш.
// Ошибки кеша логируются и не влияют на результат.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	cacheKey := fmt.Sprintf("profile:%d", userID)
	if s.cache != nil {
		var cached models.Profile
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	user, stats, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	history, err := s.repo.GetWorkHistory(ctx, userID, workHistoryLimit)
	if err != nil {
		return nil, err
	}

	profile := buildProfile(user, stats, history)

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, profile, profileCacheTTL); err != nil {
			s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return profile, nil
}

// CreateUser создает профиль пользователя без учётных данных.
func (s *UserService) CreateUser(ctx context.Context, req models.UserDraft) (int, error) {
	user := models.User{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Role:            req.Role,
		Bio:             req.Bio,
		Specializations: req.Specializations,
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	s.log.Info("created new user profile", slog.Int("id", id))
	return id, nil
}

// buildProfile собирает ответ профиля из данных хранилища.
func buildProfile(user *models.User, stats *models.ProfileStats, history []*models.WorkHistoryItem) *models.Profile {
	profile := &models.Profile{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Role:            user.Role,
		Avatar:          user.AvatarURL,
		Bio:             user.Bio,
		Specializations: []string{},
		Stats:           *stats,
		WorkHistory:     []models.WorkHistoryItem{},
	}
	if user.Rating != nil {
		profile.Rating = *user.Rating
	}
	if user.CreatedAt != nil {
		profile.MemberSince = user.CreatedAt.Format("2006-01-02")
	}
	if user.Specializations != nil && *user.Specializations != "" {
		for _, item := range strings.Split(*user.Specializations, ",") {
			profile.Specializations = append(profile.Specializations, strings.TrimSpace(item))
		}
	}
	for _, item := range history {
		profile.WorkHistory = append(profile.WorkHistory, *item)
	}
	return profile
}
