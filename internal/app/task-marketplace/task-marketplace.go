package taskmarketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/task-marketplace/internal/cache"
	"github.com/magabrotheeeer/task-marketplace/internal/config"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/task-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/task-marketplace/internal/migrations"
	authservice "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-marketplace/internal/services/task"
	userservice "github.com/magabrotheeeer/task-marketplace/internal/services/user"
	"github.com/magabrotheeeer/task-marketplace/internal/storage/repository"
)

// App объединяет HTTP-сервер и внешние зависимости приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: хранилище, миграции, кеш, брокер сообщений,
// сервисы и маршруты HTTP.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var profileCache userservice.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		profileCache = cacheRedis
	}

	// Публикация событий опциональна: без брокера задания создаются,
	// но уведомления не рассылаются.
	var publisher taskservice.Publisher
	if cfg.RabbitMQConnection.AddressRabbit != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQConnection.AddressRabbit,
			cfg.RabbitMQConnection.Retries, cfg.RabbitMQConnection.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetTaskQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch, rabbitmq.TasksExchange)
	}

	authService := authservice.NewAuthService(db, cfg.Session.SessionTTL, logger)
	taskService := taskservice.NewTaskService(db, publisher, logger)
	userService := userservice.NewUserService(db, profileCache, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, taskService, userService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
