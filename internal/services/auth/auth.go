// Package services содержит бизнес-логику аутентификации: учётные данные,
// выпуск, проверку и отзыв токенов сессий.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/token"
	"github.com/magabrotheeeer/task-marketplace/internal/models"
	"github.com/magabrotheeeer/task-marketplace/internal/storage/repository"
)

// Классифицированные ошибки аутентификации. Обработчики переводят их
// в соответствующие HTTP-статусы.
var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	// Единое сообщение, чтобы не раскрывать, что именно не совпало.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken — сессии с таким токеном не существует.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrSessionExpired — сессия существует, но срок её действия истёк.
	ErrSessionExpired = errors.New("session expired")
)

// Repository описывает контракт хранилища для пользователей и сессий.
type Repository interface {
	// CreateUserWithSession сохраняет пользователя и его первую сессию
	// в одной транзакции.
	CreateUserWithSession(ctx context.Context, user models.User, session models.Session) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePasswordHash заменяет хэш пароля пользователя.
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error

	// CreateSession сохраняет новую сессию.
	CreateSession(ctx context.Context, session models.Session) error

	// GetSessionByToken возвращает сессию с данными владельца.
	GetSessionByToken(ctx context.Context, token string) (*models.SessionInfo, error)

	// TouchSession обновляет время последней активности сессии.
	TouchSession(ctx context.Context, sessionID int) error

	// DeleteSessionByToken удаляет сессию и возвращает число удалённых строк.
	DeleteSessionByToken(ctx context.Context, token string) (int, error)
}

// RegisterRequest — данные нового пользователя.
type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	Role            string
	Phone           *string
	Bio             *string
	Specializations *string
}

// Result — результат регистрации или логина: публичные данные
// пользователя и свежевыпущенный bearer-токен.
type Result struct {
	User         models.PublicUser `json:"user"`
	SessionToken string            `json:"sessionToken"`
}

// AuthService отвечает за учётные данные и жизненный цикл сессий.
type AuthService struct {
	repo       Repository
	sessionTTL time.Duration
	log        *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo Repository, sessionTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Register создает пользователя с хэшированным паролем и сразу выпускает
// для него сессию. Пользователь и сессия создаются атомарно.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	sessionToken, err := token.New()
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Role:            req.Role,
		PasswordHash:    password.Hash(req.Password),
		Bio:             req.Bio,
		Specializations: req.Specializations,
	}
	session := models.Session{
		Token:     sessionToken,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	created, err := s.repo.CreateUserWithSession(ctx, user, session)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("registered new user", slog.Int("user_id", created.ID))
	return &Result{User: created.Public(), SessionToken: sessionToken}, nil
}

// Login проверяет учётные данные и выпускает новую сессию. Несколько
// одновременных сессий одного пользователя допустимы. Пароли в устаревшем
// bcrypt-формате после успешной проверки перехэшируются на текущую схему;
// неудача перехэширования логин не ломает.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*Result, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(rawPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if password.IsLegacy(user.PasswordHash) {
		if err := s.repo.UpdatePasswordHash(ctx, user.ID, password.Hash(rawPassword)); err != nil {
			s.log.Warn("failed to rehash legacy password", slog.Int("user_id", user.ID), sl.Err(err))
		}
	}

	sessionToken, err := token.New()
	if err != nil {
		return nil, err
	}
	session := models.Session{
		UserID:    user.ID,
		Token:     sessionToken,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("user logged in", slog.Int("user_id", user.ID))
	return &Result{User: user.Public(), SessionToken: sessionToken}, nil
}

// Verify проверяет токен сессии и возвращает её владельца.
// Несуществующий токен — ErrInvalidToken, истёкший — ErrSessionExpired.
// Обновление последней активности выполняется по возможности и на
// результат проверки не влияет.
func (s *AuthService) Verify(ctx context.Context, sessionToken string) (*models.SessionInfo, error) {
	info, err := s.repo.GetSessionByToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if time.Now().After(info.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	if err := s.repo.TouchSession(ctx, info.SessionID); err != nil {
		s.log.Warn("failed to update session activity", slog.Int("session_id", info.SessionID), sl.Err(err))
	}

	return info, nil
}

// Logout отзывает сессию по токену. Операция идемпотентна: отзыв
// несуществующего токена — не ошибка, цель уже достигнута.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if _, err := s.repo.DeleteSessionByToken(ctx, sessionToken); err != nil {
		return err
	}
	return nil
}
