// Package taskmarketplace предоставляет маршруты для основного приложения.
package taskmarketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/task-marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/task-marketplace/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/task-marketplace/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/task-marketplace/internal/http/handlers/auth/verify"
	taskcreate "github.com/magabrotheeeer/task-marketplace/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/task-marketplace/internal/http/handlers/task/health"
	tasklist "github.com/magabrotheeeer/task-marketplace/internal/http/handlers/task/list"
	taskupdate "github.com/magabrotheeeer/task-marketplace/internal/http/handlers/task/update"
	usercreate "github.com/magabrotheeeer/task-marketplace/internal/http/handlers/user/create"
	userprofile "github.com/magabrotheeeer/task-marketplace/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/task-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-marketplace/internal/storage/repository"

	authservice "github.com/magabrotheeeer/task-marketplace/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-marketplace/internal/services/task"
	userservice "github.com/magabrotheeeer/task-marketplace/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	taskService *taskservice.TaskService,
	userService *userservice.UserService,
	storage *repository.Storage,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)
		r.Get("/auth/verify", verify.New(logger, authService).ServeHTTP)

		r.Get("/tasks", tasklist.New(logger, taskService).ServeHTTP)
		r.Get("/users/{id}", userprofile.New(logger, userService).ServeHTTP)
		r.Post("/users", usercreate.New(logger, userService).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/tasks", taskcreate.New(logger, taskService).ServeHTTP)
			r.Put("/tasks/{id}/status", taskupdate.New(logger, taskService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
